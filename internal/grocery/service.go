package grocery

import (
	"errors"
	"fmt"
	"time"

	"menuplanner-backend/internal/cart"
	"menuplanner-backend/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	// ErrEmptyCart: sepet boş ya da hiçbir yemek çözülemedi
	ErrEmptyCart = errors.New("cart is empty")
	// ErrIngredientNotFound: kayıt sırasında malzeme silinmiş
	ErrIngredientNotFound = errors.New("ingredient not found")
	ErrListNotFound       = errors.New("grocery list not found")
	ErrInvalidWeek        = errors.New("endOfWeek cannot be before startOfWeek")
)

// DefaultWeek is the period used when the caller does not pick one.
const DefaultWeek = 7 * 24 * time.Hour

type Service struct {
	lists       ListRepository
	dishes      DishLookup
	ingredients IngredientLookup
	now         func() time.Time
}

func NewService(lists ListRepository, dishes DishLookup, ingredients IngredientLookup) *Service {
	return &Service{
		lists:       lists,
		dishes:      dishes,
		ingredients: ingredients,
		now:         time.Now,
	}
}

// SaveCart expands and merges the cart entries into a new grocery list owned
// by userID. Zero start/end default to now and now+7 days. Entries whose dish
// no longer exists for userID are skipped. An ingredient that is gone, or is
// not userID's, fails the whole save.
func (s *Service) SaveCart(userID uint, entries []cart.Entry, start, end time.Time) (*models.GroceryList, error) {
	if len(entries) == 0 {
		return nil, ErrEmptyCart
	}

	if start.IsZero() {
		start = s.now()
	}
	if end.IsZero() {
		end = start.Add(DefaultWeek)
	}
	if end.Before(start) {
		return nil, ErrInvalidWeek
	}

	expansions := make([][]Portion, 0, len(entries))
	for _, entry := range entries {
		dish, err := s.dishes.FindByIDAndOwner(entry.DishID, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, fmt.Errorf("load dish %d: %w", entry.DishID, err)
		}
		expansions = append(expansions, Expand(entry, dish))
	}
	if len(expansions) == 0 {
		return nil, ErrEmptyCart
	}

	merged := Merge(expansions)
	if len(merged) == 0 {
		return nil, ErrEmptyCart
	}

	list := &models.GroceryList{
		UserID:      userID,
		StartOfWeek: start,
		EndOfWeek:   end,
		Ingredients: make([]models.GroceryListIngredient, 0, len(merged)),
	}
	for _, id := range sortedIDs(merged) {
		ing, err := s.ingredients.FindByIDAndOwner(id, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: %d", ErrIngredientNotFound, id)
			}
			return nil, fmt.Errorf("load ingredient %d: %w", id, err)
		}
		list.Ingredients = append(list.Ingredients, models.GroceryListIngredient{
			IngredientID: id,
			Ingredient:   *ing,
			Quantity:     merged[id],
		})
	}

	if err := s.lists.Create(list); err != nil {
		return nil, fmt.Errorf("save grocery list: %w", err)
	}
	return list, nil
}

// UpdateIngredients makes the list's ingredients match desired. A list that
// does not exist for userID is left alone. New ingredients that cannot be
// resolved for userID are skipped.
func (s *Service) UpdateIngredients(listID, userID uint, desired map[uint]decimal.Decimal) error {
	list, err := s.lists.FindByIDAndOwner(listID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return fmt.Errorf("load grocery list %d: %w", listID, err)
	}

	rec := Reconcile(list.Ingredients, desired)

	added := make([]models.GroceryListIngredient, 0, len(rec.Added))
	for _, id := range sortedIDs(rec.Added) {
		ing, err := s.ingredients.FindByIDAndOwner(id, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return fmt.Errorf("load ingredient %d: %w", id, err)
		}
		added = append(added, models.GroceryListIngredient{
			GroceryListID: list.ID,
			IngredientID:  id,
			Ingredient:    *ing,
			Quantity:      rec.Added[id],
		})
	}

	if err := s.lists.ApplyReconciliation(list, rec, added); err != nil {
		return fmt.Errorf("update grocery list %d: %w", listID, err)
	}
	return nil
}

// IngredientPage returns one sorted page of the list's ingredients. A list
// that does not exist for userID gives an empty page, not an error.
func (s *Service) IngredientPage(listID, userID uint, offset, limit int) (IngredientPage, error) {
	list, err := s.lists.FindByIDAndOwner(listID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return IngredientPage{Items: []models.GroceryListIngredient{}}, nil
		}
		return IngredientPage{}, fmt.Errorf("load grocery list %d: %w", listID, err)
	}
	return Paginate(list.Ingredients, offset, limit), nil
}

func (s *Service) Lists(userID uint, offset, limit int) ([]models.GroceryList, int64, error) {
	return s.lists.FindAllByOwner(userID, offset, limit)
}

func (s *Service) Get(listID, userID uint) (*models.GroceryList, error) {
	list, err := s.lists.FindByIDAndOwner(listID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrListNotFound
		}
		return nil, fmt.Errorf("load grocery list %d: %w", listID, err)
	}
	return list, nil
}

func (s *Service) Delete(listID, userID uint) (*models.GroceryList, error) {
	list, err := s.Get(listID, userID)
	if err != nil {
		return nil, err
	}
	if err := s.lists.Delete(list); err != nil {
		return nil, fmt.Errorf("delete grocery list %d: %w", listID, err)
	}
	return list, nil
}
