package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"revivecare/internal/models"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const (
	doctorCacheKeyPrefix = "doctor:"
	doctorCacheTTL       = 15 * time.Minute
)

type DoctorRepository interface {
	Create(doctor *models.Doctor) error
	FindByID(id uint) (*models.Doctor, error)
	FindByEmail(email string) (*models.Doctor, error)
	FindAll() ([]models.Doctor, error)
	Update(doctor *models.Doctor) error
	Patch(id uint, data map[string]interface{}) error
	Delete(id uint) error
	EmailExists(email string) (bool, error)
	LicenseExists(licenseNumber string) (bool, error)
}

type doctorRepository struct {
	db    *gorm.DB
	redis *redis.Client
	ctx   context.Context
}

type cachedDoctor struct {
	models.Doctor
	Password string `json:"password"`
}

func doctorCacheKey(id uint) string {
	return fmt.Sprintf("%s%d", doctorCacheKeyPrefix, id)
}

func NewDoctorRepository(db *gorm.DB) DoctorRepository {
	return &doctorRepository{
		db:  db,
		ctx: context.Background(),
	}
}

// NewCachedDoctorRepository serves FindByID from Redis when possible. The
// cached copy is dropped on every write to the doctor.
func NewCachedDoctorRepository(db *gorm.DB, redisClient *redis.Client) DoctorRepository {
	return &doctorRepository{
		db:    db,
		redis: redisClient,
		ctx:   context.Background(),
	}
}

func (r *doctorRepository) Create(doctor *models.Doctor) error {
	return translateError(r.db.Create(doctor).Error)
}

func (r *doctorRepository) FindByID(id uint) (*models.Doctor, error) {
	if r.redis != nil {
		cached, err := r.redis.Get(r.ctx, doctorCacheKey(id)).Result()
		if err == nil {
			var entry cachedDoctor
			jsonErr := json.Unmarshal([]byte(cached), &entry)
			if jsonErr == nil {
				doctor := entry.Doctor
				doctor.Password = entry.Password
				return &doctor, nil
			}
			log.Printf("Failed to unmarshal cached doctor %d: %v", id, jsonErr)
		}
	}

	var doctor models.Doctor
	if err := r.db.First(&doctor, id).Error; err != nil {
		return nil, err
	}

	if r.redis != nil {
		r.cache(&doctor)
	}
	return &doctor, nil
}

// cache stores a doctor including its password hash, which the JSON form
// omits, so cached reads stay usable for password checks.
func (r *doctorRepository) cache(doctor *models.Doctor) {
	payload, err := json.Marshal(cachedDoctor{Doctor: *doctor, Password: doctor.Password})
	if err != nil {
		return
	}
	if err := r.redis.Set(r.ctx, doctorCacheKey(doctor.ID), payload, doctorCacheTTL).Err(); err != nil {
		log.Printf("Failed to cache doctor %d: %v", doctor.ID, err)
	}
}

func (r *doctorRepository) invalidate(id uint) {
	if err := InvalidateDoctorCache(r.ctx, r.redis, id); err != nil {
		log.Printf("Failed to invalidate doctor cache %d: %v", id, err)
	}
}

// InvalidateDoctorCache drops cached doctors. Code that deletes doctors
// without going through DoctorRepository must call it.
func InvalidateDoctorCache(ctx context.Context, client *redis.Client, ids ...uint) error {
	if client == nil || len(ids) == 0 {
		return nil
	}
	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, doctorCacheKey(id))
	}
	return client.Del(ctx, keys...).Err()
}

func (r *doctorRepository) FindByEmail(email string) (*models.Doctor, error) {
	var doctor models.Doctor
	if err := r.db.Where("email = ?", email).First(&doctor).Error; err != nil {
		return nil, err
	}
	return &doctor, nil
}

func (r *doctorRepository) FindAll() ([]models.Doctor, error) {
	var doctors []models.Doctor
	err := r.db.Order(models.DoctorOrder).Find(&doctors).Error
	return doctors, err
}

func (r *doctorRepository) Update(doctor *models.Doctor) error {
	if err := r.db.Save(doctor).Error; err != nil {
		return translateError(err)
	}
	r.invalidate(doctor.ID)
	return nil
}

func (r *doctorRepository) Patch(id uint, data map[string]interface{}) error {
	var doctor models.Doctor
	if err := r.db.First(&doctor, id).Error; err != nil {
		return err
	}
	if err := r.db.Model(&doctor).Updates(data).Error; err != nil {
		return translateError(err)
	}
	r.invalidate(id)
	return nil
}

// Delete removes the doctor. Patients and reports referencing the doctor
// keep their rows with the reference set to NULL.
func (r *doctorRepository) Delete(id uint) error {
	result := r.db.Delete(&models.Doctor{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	r.invalidate(id)
	return nil
}

func (r *doctorRepository) EmailExists(email string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Doctor{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

func (r *doctorRepository) LicenseExists(licenseNumber string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Doctor{}).Where("license_number = ?", licenseNumber).Count(&count).Error
	return count > 0, err
}
