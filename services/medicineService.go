package services

import (
	"context"
	"sort"

	"DoctorPortal/models"
	"DoctorPortal/repositories"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// MedicineService exposes the catalog to the prescription screens. Options
// are ordered with Thai collation so the medicine picker matches how the
// names read.
type MedicineService struct {
	repository *repositories.MedicineRepository
	collator   *collate.Collator
}

func NewMedicineService(repository *repositories.MedicineRepository) *MedicineService {
	return &MedicineService{
		repository: repository,
		collator:   collate.New(language.Thai, collate.IgnoreCase),
	}
}

// Catalog returns the session's medicines in backend order.
func (s *MedicineService) Catalog(ctx context.Context, sess *models.Session) ([]models.Medicine, error) {
	return s.repository.Catalog(ctx, sess)
}

// Options returns the catalog sorted by collated name for selection lists.
func (s *MedicineService) Options(ctx context.Context, sess *models.Session) ([]models.Medicine, error) {
	medicines, err := s.repository.Catalog(ctx, sess)
	if err != nil {
		return nil, err
	}

	options := make([]models.Medicine, len(medicines))
	copy(options, medicines)
	sort.SliceStable(options, func(i, j int) bool {
		return s.collator.CompareString(options[i].Name, options[j].Name) < 0
	})
	return options, nil
}

// Lookup resolves one catalog entry by identifier.
func (s *MedicineService) Lookup(ctx context.Context, sess *models.Session, medicineID string) (*models.Medicine, error) {
	medicines, err := s.repository.Catalog(ctx, sess)
	if err != nil {
		return nil, err
	}
	for i := range medicines {
		if medicines[i].ID == medicineID {
			return &medicines[i], nil
		}
	}
	return nil, nil
}
