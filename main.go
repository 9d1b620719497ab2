package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/sony/gobreaker"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"tascly-backend/handlers"
	"tascly-backend/logging"
	"tascly-backend/middleware"
	"tascly-backend/repositories"
	"tascly-backend/services"
)

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func main() {
	logging.InitLogger()

	logging.Logger.Info("Event ID: SERVICE_START, Description: Starting Tascly backend...")
	if err := godotenv.Load(".env"); err != nil {
		logging.Logger.Warnf("Event ID: ENV_LOAD_WARNING, Description: No .env file loaded: %v", err)
	}

	mongoURI := os.Getenv("MONGO_URI")
	mongoDBName := os.Getenv("MONGO_DB_NAME")
	if mongoURI == "" || mongoDBName == "" {
		logging.Logger.Fatalf("Event ID: CONFIG_ERROR, Description: MONGO_URI and MONGO_DB_NAME must be set.")
	}
	if os.Getenv("JWT_SECRET") == "" {
		logging.Logger.Fatalf("Event ID: CONFIG_ERROR, Description: JWT_SECRET must be set.")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		logging.Logger.Fatalf("Event ID: DB_CONNECTION_FAILED, Description: Database connection for MongoDB failed: %v", err)
	}
	defer client.Disconnect(context.Background())

	if err := client.Ping(ctx, nil); err != nil {
		logging.Logger.Fatalf("Event ID: DB_PING_FAILED, Description: MongoDB connection ping error: %v", err)
	}
	logging.Logger.Infof("Event ID: DB_CONNECTED, Description: Successfully connected to MongoDB at %s.", mongoURI)

	db := client.Database(mongoDBName)
	taskRepo := repositories.NewTaskRepository(client, db.Collection("tasks"))
	teamMemberRepo := repositories.NewTeamMemberRepository(db.Collection("team_members"))
	projectRepo := repositories.NewProjectRepository(db.Collection("projects"))
	userRepo := repositories.NewUserRepository(db.Collection("users"))

	aiBreaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "ai-provider-cb",
		MaxRequests: 1,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Logger.Infof("Event ID: CIRCUIT_BREAKER_STATE_CHANGE, Description: Circuit Breaker '%s' changed from '%s' to '%s'", name, from.String(), to.String())
		},
	})

	aiConfig := services.LoadAIConfig()
	if aiConfig.APIKey == "" {
		logging.Logger.Warn("Event ID: AI_KEY_MISSING, Description: AI_API_KEY is not set; task generation will be unavailable.")
	}
	completionClient := services.NewCompletionClient(aiConfig, aiBreaker)

	aiTaskService := services.NewAiTaskService(teamMemberRepo, completionClient)
	taskService := services.NewTaskService(taskRepo, teamMemberRepo, projectRepo)
	teamMemberService := services.NewTeamMemberService(teamMemberRepo, userRepo, projectRepo)
	projectService := services.NewProjectService(projectRepo, teamMemberRepo)

	aiHandler := handlers.NewAiHandler(aiTaskService)
	taskHandler := handlers.NewTaskHandler(taskService)
	teamMemberHandler := handlers.NewTeamMemberHandler(teamMemberService)
	projectHandler := handlers.NewProjectHandler(projectService)

	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()
	api.Use(middleware.JWTAuthMiddleware)

	api.HandleFunc("/ai/generate-tasks", aiHandler.GenerateTasks).Methods(http.MethodPost)

	api.HandleFunc("/tasks", taskHandler.GetMyTasks).Methods(http.MethodGet)
	api.HandleFunc("/tasks/bulk", taskHandler.BulkCreateTasks).Methods(http.MethodPost)
	api.HandleFunc("/tasks/project/{projectId}", taskHandler.GetTasksByProjectID).Methods(http.MethodGet)
	api.HandleFunc("/tasks/daily/{date}", taskHandler.GetDailyTasks).Methods(http.MethodGet)
	api.HandleFunc("/tasks/weekly/{date}", taskHandler.GetWeeklyTasks).Methods(http.MethodGet)
	api.HandleFunc("/tasks/{id}/schedule", taskHandler.UpdateTaskSchedule).Methods(http.MethodPatch)
	api.HandleFunc("/tasks/{id}/status", taskHandler.UpdateTaskStatus).Methods(http.MethodPatch)
	api.HandleFunc("/tasks/{id}", taskHandler.DeleteTask).Methods(http.MethodDelete)

	api.HandleFunc("/team-members/project/{projectId}", teamMemberHandler.GetByProject).Methods(http.MethodGet)
	api.HandleFunc("/team-members", teamMemberHandler.AddTeamMember).Methods(http.MethodPost)

	api.HandleFunc("/projects", projectHandler.GetMyProjects).Methods(http.MethodGet)
	api.HandleFunc("/projects", projectHandler.CreateProject).Methods(http.MethodPost)

	corsRouter := enableCORS(r)

	serverPort := os.Getenv("SERVER_PORT")
	if serverPort == "" {
		logging.Logger.Fatalf("Event ID: CONFIG_ERROR, Description: SERVER_PORT is not set in the environment variables.")
	}

	serverAddress := fmt.Sprintf(":%s", serverPort)
	logging.Logger.Infof("Event ID: SERVER_START_INFO, Description: Server running on http://localhost%s", serverAddress)

	if err := http.ListenAndServe(serverAddress, corsRouter); err != nil {
		logging.Logger.Fatalf("Event ID: SERVER_FATAL_ERROR, Description: Server failed to start: %v", err)
	}
}
