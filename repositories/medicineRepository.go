package repositories

import (
	"context"
	"encoding/json"
	"log"

	"DoctorPortal/backend"
	"DoctorPortal/cache"
	"DoctorPortal/models"
	"DoctorPortal/utils"
)

// MedicineRepository serves the read-only medicine catalog. The catalog is
// fetched once per session and cached in Redis until the session ends.
type MedicineRepository struct {
	cache   *cache.Cache
	backend *backend.Client
}

func NewMedicineRepository(cache *cache.Cache, backend *backend.Client) *MedicineRepository {
	return &MedicineRepository{cache: cache, backend: backend}
}

// Catalog returns the session's medicine catalog, fetching it on first use.
func (r *MedicineRepository) Catalog(ctx context.Context, sess *models.Session) ([]models.Medicine, error) {
	cacheKey := r.catalogKey(sess.SessionID)
	cached, err := r.cache.Get(ctx, cacheKey)
	if err != nil {
		log.Printf("Failed to get medicine catalog from cache: %v", err)
	}
	if cached != "" {
		var medicines []models.Medicine
		if err := json.Unmarshal([]byte(cached), &medicines); err == nil {
			return medicines, nil
		}
	}

	list, err := r.backend.Medicines(ctx, sess)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(list.Medicines)
	if err == nil {
		if err := r.cache.Set(ctx, cacheKey, payload, utils.SessionExpiry); err != nil {
			log.Printf("Failed to cache medicine catalog: %v", err)
		}
	}
	return list.Medicines, nil
}

func (r *MedicineRepository) catalogKey(sessionID string) string {
	return SessionScopedKey(sessionID, "medicines")
}
