package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/shramik-labs/labour-backend-go/internal/config"
	appHTTP "github.com/shramik-labs/labour-backend-go/internal/handler/http"
	"github.com/shramik-labs/labour-backend-go/internal/pkg/cron"
	"github.com/shramik-labs/labour-backend-go/internal/pkg/database"
	"github.com/shramik-labs/labour-backend-go/internal/pkg/events"
	"github.com/shramik-labs/labour-backend-go/internal/pkg/jwt"
	"github.com/shramik-labs/labour-backend-go/internal/repository/postgresql"
	attendanceService "github.com/shramik-labs/labour-backend-go/internal/service/attendance"
	dashboardService "github.com/shramik-labs/labour-backend-go/internal/service/dashboard"
	labourService "github.com/shramik-labs/labour-backend-go/internal/service/labour"
	"github.com/shramik-labs/labour-backend-go/internal/service/master"
	reportService "github.com/shramik-labs/labour-backend-go/internal/service/report"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	loc, err := time.LoadLocation(cfg.Location())
	if err != nil {
		log.Fatal("Invalid timezone: ", cfg.Location())
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	labourRepo := postgresql.NewLabourRepository(db)
	categoryRepo := postgresql.NewCategoryRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret)
	hub := events.NewHub()

	labourSvc := labourService.NewLabourService(db, labourRepo, categoryRepo, attendanceRepo, hub)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, labourRepo, hub)
	masterSvc := master.NewMasterService(categoryRepo)
	dashboardSvc := dashboardService.NewDashboardService(attendanceRepo, labourRepo)
	reportSvc := reportService.NewReportService(attendanceRepo, labourRepo)

	labourHandler := appHTTP.NewLabourHandler(labourSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc, loc)
	dashboardHandler := appHTTP.NewDashboardHandler(dashboardSvc, loc)
	masterHandler := appHTTP.NewMasterHandler(masterSvc)
	reportHandler := appHTTP.NewReportHandler(reportSvc)
	eventsHandler := appHTTP.NewEventsHandler(hub, jwtService)

	scheduler := cron.NewScheduler()
	attendanceJobs := cron.NewAttendanceJobs(attendanceRepo, labourRepo, hub, loc)
	attendanceJobs.RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(
		cfg,
		jwtService,
		labourHandler,
		attendanceHandler,
		dashboardHandler,
		masterHandler,
		reportHandler,
		eventsHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
