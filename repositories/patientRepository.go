package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"DoctorPortal/backend"
	"DoctorPortal/cache"
	"DoctorPortal/models"
	"DoctorPortal/utils"
)

// PatientRepository resolves patient profiles lazily, caching each profile
// for the lifetime of the session that requested it.
type PatientRepository struct {
	cache   *cache.Cache
	backend *backend.Client
}

func NewPatientRepository(cache *cache.Cache, backend *backend.Client) *PatientRepository {
	return &PatientRepository{cache: cache, backend: backend}
}

// Profiles returns profiles for the requested patient identifiers. Cached
// profiles are served from Redis; the rest are fetched in one batch call and
// cached for the session.
func (r *PatientRepository) Profiles(ctx context.Context, sess *models.Session, patientIDs []string) ([]models.PatientProfile, error) {
	profiles := make([]models.PatientProfile, 0, len(patientIDs))
	var missing []string

	for _, id := range patientIDs {
		if id == "" {
			continue
		}
		cached, err := r.cache.Get(ctx, r.profileKey(sess.SessionID, id))
		if err != nil {
			log.Printf("Failed to get patient profile from cache: %v", err)
		}
		if cached != "" {
			var profile models.PatientProfile
			if err := json.Unmarshal([]byte(cached), &profile); err == nil {
				profiles = append(profiles, profile)
				continue
			}
		}
		missing = append(missing, id)
	}

	if len(missing) == 0 {
		return profiles, nil
	}

	fetched, err := r.backend.PatientProfiles(ctx, sess, missing)
	if err != nil {
		return nil, err
	}

	for _, profile := range fetched {
		profiles = append(profiles, profile)
		payload, err := json.Marshal(profile)
		if err != nil {
			continue
		}
		if err := r.cache.Set(ctx, r.profileKey(sess.SessionID, profile.ID), payload, utils.SessionExpiry); err != nil {
			log.Printf("Failed to cache patient profile: %v", err)
		}
	}
	return profiles, nil
}

func (r *PatientRepository) profileKey(sessionID, patientID string) string {
	return SessionScopedKey(sessionID, fmt.Sprintf("patient:%s", patientID))
}
