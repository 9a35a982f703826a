package devserver

import (
	"context"
	"log"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"tableflip.dev/mercury/pkg/api"
	"tableflip.dev/mercury/pkg/goal"
	"tableflip.dev/mercury/pkg/habit"
	"tableflip.dev/mercury/pkg/note"
)

// Config wraps the knobs that impact runtime behavior.
type Config struct {
	Addr string
}

// Server exposes the Fiber application over the in-memory store.
type Server struct {
	app   *fiber.App
	store *Store
	cfg   Config
}

// NewServer wires handlers and middleware.
func NewServer(cfg Config, store *Store) *Server {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ReadTimeout:           15 * time.Second,
		WriteTimeout:          15 * time.Second,
	})
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{Format: "${time} | ${status} | ${latency} | ${method} ${path}\n"}))
	app.Use(cors.New())

	srv := &Server{app: app, store: store, cfg: cfg}
	srv.registerRoutes()
	return srv
}

// App returns the underlying Fiber app, for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// Run starts listening for HTTP traffic until the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		_ = s.app.Shutdown()
	}()

	log.Printf("dev backend listening on %s", s.cfg.Addr)
	return s.app.Listen(s.cfg.Addr)
}

func (s *Server) registerRoutes() {
	s.app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	r := s.app.Group("/api")

	r.Post("/users", s.handleUpsertUser)
	r.Get("/users/provider/:provider/:providerID", s.handleUserByProvider)
	r.Get("/users/:id", s.handleUser)

	r.Post("/goals", s.handleCreateGoal)
	r.Get("/goals/user/:userID/active", s.handleGoalsByUser(true))
	r.Get("/goals/user/:userID/completed", s.handleCompletedGoals)
	r.Get("/goals/user/:userID/overdue", s.handleOverdueGoals)
	r.Get("/goals/user/:userID", s.handleGoalsByUser(false))
	r.Get("/goals/:id", s.handleGoal)
	r.Put("/goals/:id", s.handleUpdateGoal)
	r.Patch("/goals/:id/status", s.handleGoalStatus)
	r.Delete("/goals/:id", s.handleDeleteGoal)

	r.Post("/habits", s.handleCreateHabit)
	r.Get("/habits/user/:userID/count", s.handleCountHabits)
	r.Get("/habits/user/:userID", s.handleHabitsByUser)
	r.Get("/habits/goal/:goalID", s.handleHabitsByGoal)
	r.Get("/habits/:id", s.handleHabit)
	r.Put("/habits/:id", s.handleUpdateHabit)
	r.Delete("/habits/:id", s.handleDeleteHabit)

	r.Post("/tasks", s.handleCreateTask)
	r.Get("/tasks/user/:userID/week", s.handleWeek)
	r.Get("/tasks/user/:userID/completed", s.handleTasksByCompletion(true))
	r.Get("/tasks/user/:userID/pending", s.handleTasksByCompletion(false))
	r.Get("/tasks/user/:userID", s.handleTasksByUser)
	r.Get("/tasks/habit/:habitID", s.handleTasksByHabit)
	r.Get("/tasks/:id", s.handleTask)
	r.Patch("/tasks/:id/toggle", s.handleToggleTask)
	r.Put("/tasks/:id", s.handleUpdateTask)
	r.Delete("/tasks/:id", s.handleDeleteTask)

	r.Post("/notes", s.handleCreateNote)
	r.Get("/notes/goal/:goalID/count", s.handleCountNotes)
	r.Get("/notes/goal/:goalID", s.handleNotesByGoal)
	r.Put("/notes/:id", s.handleUpdateNote)
	r.Delete("/notes/:id", s.handleDeleteNote)
}

func errJSON(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"error": msg})
}

func paramID(c *fiber.Ctx, name string) (int64, error) {
	return strconv.ParseInt(c.Params(name), 10, 64)
}

func (s *Server) handleUpsertUser(c *fiber.Ctx) error {
	var req api.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return errJSON(c, fiber.StatusBadRequest, "invalid payload")
	}
	if req.Provider == "" || req.ProviderID == "" {
		return errJSON(c, fiber.StatusBadRequest, "provider identity is required")
	}
	return c.Status(fiber.StatusCreated).JSON(s.store.UpsertUser(req))
}

func (s *Server) handleUserByProvider(c *fiber.Ctx) error {
	u, err := s.store.UserByProvider(c.Params("provider"), c.Params("providerID"))
	if err != nil {
		return errJSON(c, fiber.StatusNotFound, "user not found")
	}
	return c.JSON(u)
}

func (s *Server) handleUser(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return errJSON(c, fiber.StatusBadRequest, "invalid id")
	}
	u, err := s.store.User(id)
	if err != nil {
		return errJSON(c, fiber.StatusNotFound, "user not found")
	}
	return c.JSON(u)
}

func (s *Server) handleCreateGoal(c *fiber.Ctx) error {
	var req api.CreateGoalRequest
	if err := c.BodyParser(&req); err != nil {
		return errJSON(c, fiber.StatusBadRequest, "invalid payload")
	}
	if err := goal.ValidateTitle(req.Title); err != nil {
		return errJSON(c, fiber.StatusBadRequest, err.Error())
	}
	if err := goal.ValidateDates(req.StartDate, req.EndDate); err != nil {
		return errJSON(c, fiber.StatusBadRequest, err.Error())
	}
	return c.Status(fiber.StatusCreated).JSON(s.store.CreateGoal(req))
}

func (s *Server) handleGoal(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return errJSON(c, fiber.StatusBadRequest, "invalid id")
	}
	g, err := s.store.Goal(id)
	if err != nil {
		return errJSON(c, fiber.StatusNotFound, "goal not found")
	}
	return c.JSON(g)
}

func (s *Server) handleGoalsByUser(activeOnly bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := paramID(c, "userID")
		if err != nil {
			return errJSON(c, fiber.StatusBadRequest, "invalid user id")
		}
		goals := s.store.GoalsByUser(userID, activeOnly)
		if goals == nil {
			goals = []goal.Goal{}
		}
		return c.JSON(goals)
	}
}

func (s *Server) handleCompletedGoals(c *fiber.Ctx) error {
	userID, err := paramID(c, "userID")
	if err != nil {
		return errJSON(c, fiber.StatusBadRequest, "invalid user id")
	}
	goals := s.store.CompletedGoalsByUser(userID)
	if goals == nil {
		goals = []goal.Goal{}
	}
	return c.JSON(goals)
}

func (s *Server) handleOverdueGoals(c *fiber.Ctx) error {
	userID, err := paramID(c, "userID")
	if err != nil {
		return errJSON(c, fiber.StatusBadRequest, "invalid user id")
	}
	goals := s.store.OverdueGoalsByUser(userID)
	if goals == nil {
		goals = []goal.Goal{}
	}
	return c.JSON(goals)
}

func (s *Server) handleUpdateGoal(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return errJSON(c, fiber.StatusBadRequest, "invalid id")
	}
	var req api.UpdateGoalRequest
	if err := c.BodyParser(&req); err != nil {
		return errJSON(c, fiber.StatusBadRequest, "invalid payload")
	}
	g, err := s.store.UpdateGoal(id, req)
	if err != nil {
		return errJSON(c, fiber.StatusNotFound, "goal not found")
	}
	return c.JSON(g)
}

func (s *Server) handleGoalStatus(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return errJSON(c, fiber.StatusBadRequest, "invalid id")
	}
	var body struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&body); err != nil {
		return errJSON(c, fiber.StatusBadRequest, "invalid payload")
	}
	status, err := goal.StatusForName(body.Status)
	if err != nil {
		return errJSON(c, fiber.StatusBadRequest, err.Error())
	}
	g, err := s.store.SetGoalStatus(id, status)
	if err != nil {
		return errJSON(c, fiber.StatusNotFound, "goal not found")
	}
	return c.JSON(g)
}

func (s *Server) handleDeleteGoal(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return errJSON(c, fiber.StatusBadRequest, "invalid id")
	}
	if err := s.store.DeleteGoal(id); err != nil {
		return errJSON(c, fiber.StatusNotFound, "goal not found")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) handleCreateHabit(c *fiber.Ctx) error {
	var req api.CreateHabitRequest
	if err := c.BodyParser(&req); err != nil {
		return errJSON(c, fiber.StatusBadRequest, "invalid payload")
	}
	candidate := habit.Habit{
		Name:        req.Name,
		Description: req.Description,
		DaysOfWeek:  req.DaysOfWeek,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	}
	if err := candidate.Validate(); err != nil {
		return errJSON(c, fiber.StatusBadRequest, err.Error())
	}
	h, err := s.store.CreateHabit(req)
	if err != nil {
		return errJSON(c, fiber.StatusNotFound, "goal not found")
	}
	return c.Status(fiber.StatusCreated).JSON(h)
}

func (s *Server) handleHabit(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return errJSON(c, fiber.StatusBadRequest, "invalid id")
	}
	h, err := s.store.Habit(id)
	if err != nil {
		return errJSON(c, fiber.StatusNotFound, "habit not found")
	}
	return c.JSON(h)
}

func (s *Server) handleHabitsByUser(c *fiber.Ctx) error {
	userID, err := paramID(c, "userID")
	if err != nil {
		return errJSON(c, fiber.StatusBadRequest, "invalid user id")
	}
	habits := s.store.HabitsByUser(userID)
	if habits == nil {
		habits = []habit.Habit{}
	}
	return c.JSON(habits)
}

func (s *Server) handleHabitsByGoal(c *fiber.Ctx) error {
	goalID, err := paramID(c, "goalID")
	if err != nil {
		return errJSON(c, fiber.StatusBadRequest, "invalid goal id")
	}
	habits := s.store.HabitsByGoal(goalID)
	if habits == nil {
		habits = []habit.Habit{}
	}
	return c.JSON(habits)
}

func (s *Server) handleCountHabits(c *fiber.Ctx) error {
	userID, err := paramID(c, "userID")
	if err != nil {
		return errJSON(c, fiber.StatusBadRequest, "invalid user id")
	}
	return c.JSON(fiber.Map{"count": s.store.CountHabitsByUser(userID)})
}

func (s *Server) handleUpdateHabit(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return errJSON(c, fiber.StatusBadRequest, "invalid id")
	}
	var req api.UpdateHabitRequest
	if err := c.BodyParser(&req); err != nil {
		return errJSON(c, fiber.StatusBadRequest, "invalid payload")
	}
	h, err := s.store.UpdateHabit(id, req)
	if err != nil {
		return errJSON(c, fiber.StatusNotFound, "habit not found")
	}
	return c.JSON(h)
}

func (s *Server) handleDeleteHabit(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return errJSON(c, fiber.StatusBadRequest, "invalid id")
	}
	if err := s.store.DeleteHabit(id); err != nil {
		return errJSON(c, fiber.StatusNotFound, "habit not found")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) handleCreateTask(c *fiber.Ctx) error {
	var req api.CreateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return errJSON(c, fiber.StatusBadRequest, "invalid payload")
	}
	if req.Name == "" || req.Date == "" {
		return errJSON(c, fiber.StatusBadRequest, "name and date are required")
	}
	t, err := s.store.CreateTask(req)
	if err != nil {
		return errJSON(c, fiber.StatusNotFound, "habit not found")
	}
	return c.Status(fiber.StatusCreated).JSON(t)
}

func (s *Server) handleTask(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return errJSON(c, fiber.StatusBadRequest, "invalid id")
	}
	t, err := s.store.Task(id)
	if err != nil {
		return errJSON(c, fiber.StatusNotFound, "task not found")
	}
	return c.JSON(t)
}

func (s *Server) handleTasksByUser(c *fiber.Ctx) error {
	userID, err := paramID(c, "userID")
	if err != nil {
		return errJSON(c, fiber.StatusBadRequest, "invalid user id")
	}
	tasks := s.store.TasksByUser(userID)
	if tasks == nil {
		tasks = []habit.Task{}
	}
	return c.JSON(tasks)
}

func (s *Server) handleTasksByHabit(c *fiber.Ctx) error {
	habitID, err := paramID(c, "habitID")
	if err != nil {
		return errJSON(c, fiber.StatusBadRequest, "invalid habit id")
	}
	tasks := s.store.TasksByHabit(habitID)
	if tasks == nil {
		tasks = []habit.Task{}
	}
	return c.JSON(tasks)
}

func (s *Server) handleWeek(c *fiber.Ctx) error {
	userID, err := paramID(c, "userID")
	if err != nil {
		return errJSON(c, fiber.StatusBadRequest, "invalid user id")
	}
	start := c.Query("startDate")
	end := c.Query("endDate")
	if start == "" || end == "" {
		return errJSON(c, fiber.StatusBadRequest, "startDate and endDate are required")
	}
	tasks := s.store.TasksByDateRange(userID, start, end)
	if tasks == nil {
		tasks = []habit.Task{}
	}
	return c.JSON(tasks)
}

func (s *Server) handleTasksByCompletion(completed bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := paramID(c, "userID")
		if err != nil {
			return errJSON(c, fiber.StatusBadRequest, "invalid user id")
		}
		var tasks []habit.Task
		if completed {
			tasks = s.store.CompletedTasksByUser(userID)
		} else {
			tasks = s.store.PendingTasksByUser(userID)
		}
		if tasks == nil {
			tasks = []habit.Task{}
		}
		return c.JSON(tasks)
	}
}

func (s *Server) handleToggleTask(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return errJSON(c, fiber.StatusBadRequest, "invalid id")
	}
	t, err := s.store.ToggleTask(id)
	if err != nil {
		return errJSON(c, fiber.StatusNotFound, "task not found")
	}
	return c.JSON(t)
}

func (s *Server) handleUpdateTask(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return errJSON(c, fiber.StatusBadRequest, "invalid id")
	}
	var req api.UpdateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return errJSON(c, fiber.StatusBadRequest, "invalid payload")
	}
	t, err := s.store.UpdateTask(id, req)
	if err != nil {
		return errJSON(c, fiber.StatusNotFound, "task not found")
	}
	return c.JSON(t)
}

func (s *Server) handleDeleteTask(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return errJSON(c, fiber.StatusBadRequest, "invalid id")
	}
	if err := s.store.DeleteTask(id); err != nil {
		return errJSON(c, fiber.StatusNotFound, "task not found")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) handleCreateNote(c *fiber.Ctx) error {
	var req api.CreateNoteRequest
	if err := c.BodyParser(&req); err != nil {
		return errJSON(c, fiber.StatusBadRequest, "invalid payload")
	}
	draft := note.Note{Content: req.Content}
	if err := draft.Validate(); err != nil {
		return errJSON(c, fiber.StatusBadRequest, err.Error())
	}
	n, err := s.store.CreateNote(req)
	if err != nil {
		return errJSON(c, fiber.StatusNotFound, "goal not found")
	}
	return c.Status(fiber.StatusCreated).JSON(n)
}

func (s *Server) handleNotesByGoal(c *fiber.Ctx) error {
	goalID, err := paramID(c, "goalID")
	if err != nil {
		return errJSON(c, fiber.StatusBadRequest, "invalid goal id")
	}
	notes := s.store.NotesByGoal(goalID)
	if notes == nil {
		notes = []note.Note{}
	}
	return c.JSON(notes)
}

func (s *Server) handleCountNotes(c *fiber.Ctx) error {
	goalID, err := paramID(c, "goalID")
	if err != nil {
		return errJSON(c, fiber.StatusBadRequest, "invalid goal id")
	}
	return c.JSON(fiber.Map{"count": s.store.CountNotesByGoal(goalID)})
}

func (s *Server) handleUpdateNote(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return errJSON(c, fiber.StatusBadRequest, "invalid id")
	}
	var body struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&body); err != nil {
		return errJSON(c, fiber.StatusBadRequest, "invalid payload")
	}
	n, err := s.store.UpdateNote(id, body.Content)
	if err != nil {
		return errJSON(c, fiber.StatusNotFound, "note not found")
	}
	return c.JSON(n)
}

func (s *Server) handleDeleteNote(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return errJSON(c, fiber.StatusBadRequest, "invalid id")
	}
	if err := s.store.DeleteNote(id); err != nil {
		return errJSON(c, fiber.StatusNotFound, "note not found")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
