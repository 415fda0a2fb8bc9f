package utils

import (
	"context"
	"fmt"
	"log"

	"revivecare/internal/models"
	"revivecare/internal/repository"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const deleteBatchSize = 1000

func testEmailRange(startIndex, endIndex int, format func(int) string) ([]string, error) {
	if endIndex < startIndex {
		return nil, fmt.Errorf("end index %d is before start index %d", endIndex, startIndex)
	}
	emails := make([]string, 0, endIndex-startIndex+1)
	for i := startIndex; i <= endIndex; i++ {
		emails = append(emails, format(i))
	}
	return emails, nil
}

// CheckForDuplicateEmails returns the test doctor and patient emails in the
// range that are already taken.
func CheckForDuplicateEmails(db *gorm.DB, startIndex, endIndex int) ([]string, error) {
	log.Printf("Checking for duplicate emails in range %d-%d...", startIndex, endIndex)

	doctorEmails, err := testEmailRange(startIndex, endIndex, testDoctorEmail)
	if err != nil {
		return nil, err
	}
	patientEmails, _ := testEmailRange(startIndex, endIndex, testPatientEmail)

	var duplicates []string
	for start := 0; start < len(doctorEmails); start += deleteBatchSize {
		end := start + deleteBatchSize
		if end > len(doctorEmails) {
			end = len(doctorEmails)
		}

		var found []string
		if err := db.Model(&models.Doctor{}).
			Where("email IN ?", doctorEmails[start:end]).
			Pluck("email", &found).Error; err != nil {
			return nil, fmt.Errorf("failed to check doctor emails: %w", err)
		}
		duplicates = append(duplicates, found...)

		found = nil
		if err := db.Model(&models.Patient{}).
			Where("email IN ?", patientEmails[start:end]).
			Pluck("email", &found).Error; err != nil {
			return nil, fmt.Errorf("failed to check patient emails: %w", err)
		}
		duplicates = append(duplicates, found...)
	}

	for _, email := range duplicates {
		log.Printf("Email %s already exists in the database", email)
	}
	log.Println("Email duplicate check completed")
	return duplicates, nil
}

// DeleteTestAccounts removes seeded doctors and patients in the range.
// Patient rows cascade to their sessions, chat and reports. When rdb is set
// the cached copies of the deleted doctors are dropped as well.
func DeleteTestAccounts(db *gorm.DB, rdb *redis.Client, startIndex, endIndex int) (int64, error) {
	log.Printf("Deleting test accounts in range %d-%d...", startIndex, endIndex)

	patientEmails, err := testEmailRange(startIndex, endIndex, testPatientEmail)
	if err != nil {
		return 0, err
	}
	doctorEmails, _ := testEmailRange(startIndex, endIndex, testDoctorEmail)

	var totalDeleted int64
	var doctorIDs []uint
	err = db.Transaction(func(tx *gorm.DB) error {
		for start := 0; start < len(patientEmails); start += deleteBatchSize {
			end := start + deleteBatchSize
			if end > len(patientEmails) {
				end = len(patientEmails)
			}

			result := tx.Where("email IN ?", patientEmails[start:end]).Delete(&models.Patient{})
			if result.Error != nil {
				return fmt.Errorf("failed to delete test patients: %w", result.Error)
			}
			totalDeleted += result.RowsAffected

			var ids []uint
			if err := tx.Model(&models.Doctor{}).
				Where("email IN ?", doctorEmails[start:end]).
				Pluck("id", &ids).Error; err != nil {
				return fmt.Errorf("failed to look up test doctors: %w", err)
			}
			if len(ids) > 0 {
				result = tx.Delete(&models.Doctor{}, ids)
				if result.Error != nil {
					return fmt.Errorf("failed to delete test doctors: %w", result.Error)
				}
				totalDeleted += result.RowsAffected
				doctorIDs = append(doctorIDs, ids...)
			}

			log.Printf("Processed batch %d-%d, deleted %d accounts so far",
				startIndex+start, startIndex+end-1, totalDeleted)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	if err := repository.InvalidateDoctorCache(context.Background(), rdb, doctorIDs...); err != nil {
		log.Printf("Warning: failed to clear cached doctors: %v", err)
	}

	log.Printf("Deleted %d test accounts", totalDeleted)
	return totalDeleted, nil
}
