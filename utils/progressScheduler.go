package utils

import (
	"lms/config"
	"lms/database"
	courseModels "lms/models/course"
	"lms/services"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// logScheduler logs scheduler events with timestamp
func logScheduler(message string) {
	log.Printf("[PROGRESS-SCHEDULER %s] %s", time.Now().Format(time.RFC3339), message)
}

// InitializeProgressScheduler sets up the nightly reconciliation sweep.
// Lesson additions already trigger a recompute inline; the sweep is a
// backstop that re-derives every percentage from the stored counts in
// case an inline recompute was lost mid-loop.
func InitializeProgressScheduler() {
	logScheduler("Initializing progress scheduler...")

	c := cron.New()

	_, err := c.AddFunc(config.AppConfig.ReconcileCronSpec, func() {
		logScheduler("Running progress reconciliation sweep...")
		ReconcileAllCourseProgress()
	})
	if err != nil {
		log.Fatalf("Invalid RECONCILE_CRON expression %q: %v", config.AppConfig.ReconcileCronSpec, err)
	}

	c.Start()
	logScheduler("Progress scheduler started with spec " + config.AppConfig.ReconcileCronSpec)
}

// ReconcileAllCourseProgress recomputes percentages for every course
// that has at least one enrollment.
func ReconcileAllCourseProgress() {
	db := database.Database.Db

	var courseIDs []uint
	if err := db.Model(&courseModels.Enrollment{}).
		Where("is_deleted = ?", false).
		Distinct("course_id").
		Pluck("course_id", &courseIDs).Error; err != nil {
		logScheduler("Error listing enrolled courses: " + err.Error())
		return
	}

	for _, courseID := range courseIDs {
		if err := services.HandleLessonAdded(db, services.LessonAdded{CourseID: courseID}); err != nil {
			logScheduler("Error reconciling course progress: " + err.Error())
		}
	}

	logScheduler("Reconciliation sweep finished")
}
