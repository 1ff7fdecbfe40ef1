package store

import (
	"errors"

	"gorm.io/gorm"

	"cafewifi/model"
)

var (
	// ErrNotFound means no cafe exists with the given id.
	ErrNotFound = errors.New("cafe not found")
	// ErrDuplicateName means an insert hit the unique index on name.
	ErrDuplicateName = errors.New("cafe name already exists")
)

// CafeStore is the persistence layer for cafe records. The unique index
// on name is the only serialization point: concurrent inserts of the same
// name resolve to one winner inside the database.
type CafeStore struct {
	db *gorm.DB
}

func New(db *gorm.DB) *CafeStore {
	return &CafeStore{db: db}
}

// Insert persists a new cafe and fills in its assigned id.
func (s *CafeStore) Insert(cafe *model.Cafe) error {
	if err := s.db.Create(cafe).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateName
		}
		return err
	}
	return nil
}

func (s *CafeStore) GetByID(id uint) (model.Cafe, error) {
	var cafe model.Cafe
	if err := s.db.First(&cafe, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.Cafe{}, ErrNotFound
		}
		return model.Cafe{}, err
	}
	return cafe, nil
}

// GetAll returns every cafe in insertion order.
func (s *CafeStore) GetAll() ([]model.Cafe, error) {
	cafes := []model.Cafe{}
	if err := s.db.Order("id").Find(&cafes).Error; err != nil {
		return nil, err
	}
	return cafes, nil
}

// FilterByLocation returns cafes whose location equals loc exactly,
// case-sensitive. An empty result is not an error.
func (s *CafeStore) FilterByLocation(loc string) ([]model.Cafe, error) {
	cafes := []model.Cafe{}
	if err := s.db.Where("location = ?", loc).Order("id").Find(&cafes).Error; err != nil {
		return nil, err
	}
	return cafes, nil
}

// UpdatePrice sets coffee_price on the cafe with the given id and returns
// the updated record. No other column is touched.
func (s *CafeStore) UpdatePrice(id uint, price string) (model.Cafe, error) {
	cafe, err := s.GetByID(id)
	if err != nil {
		return model.Cafe{}, err
	}
	if err := s.db.Model(&cafe).Update("coffee_price", &price).Error; err != nil {
		return model.Cafe{}, err
	}
	cafe.CoffeePrice = &price
	return cafe, nil
}

// Delete removes the cafe with the given id. It reports whether a record
// actually existed.
func (s *CafeStore) Delete(id uint) (bool, error) {
	result := s.db.Delete(&model.Cafe{}, id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
