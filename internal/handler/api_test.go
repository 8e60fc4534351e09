package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/campus-hub/academy-api/internal/config"
	"github.com/campus-hub/academy-api/internal/handler"
	"github.com/campus-hub/academy-api/internal/middleware"
	"github.com/campus-hub/academy-api/internal/models"
	"github.com/campus-hub/academy-api/internal/repository"
	"github.com/campus-hub/academy-api/internal/router"
	"github.com/campus-hub/academy-api/internal/service"
)

const testSecret = "test-secret"

type testUploader struct{}

func (t *testUploader) Upload(_ context.Context, name string, _ io.Reader) (string, error) {
	return "https://files.example.com/" + name, nil
}

type testEnv struct {
	app *fiber.App
	db  *gorm.DB
}

func setupAPI(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Course{},
		&models.Enrollment{},
		&models.AttendanceRecord{},
		&models.Assignment{},
		&models.Submission{},
		&models.Announcement{},
		&models.ActivityLog{},
	))

	validate := validator.New(validator.WithRequiredStructEnabled())
	logger := zerolog.New(io.Discard)
	uploader := &testUploader{}

	userRepo := repository.NewUserRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	assignmentRepo := repository.NewAssignmentRepository(db)
	announcementRepo := repository.NewAnnouncementRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(db)
	activityRepo := repository.NewActivityLogRepository(db)

	activityService := service.NewActivityService(activityRepo, logger)
	authService := service.NewAuthService(userRepo, validate, testSecret, time.Hour, logger)
	userService := service.NewUserService(userRepo, validate, activityService, logger)
	courseService := service.NewCourseService(courseRepo, assignmentRepo, validate, activityService, logger)
	enrollmentService := service.NewEnrollmentService(courseRepo, userRepo, validate, activityService, logger)
	assignmentService := service.NewAssignmentService(assignmentRepo, courseRepo, validate, uploader, logger)
	announcementService := service.NewAnnouncementService(announcementRepo, validate, activityService, logger)
	adminDashboardService := service.NewAdminDashboardService(analyticsRepo, logger)
	staffDashboardService := service.NewStaffDashboardService(courseRepo, assignmentRepo, logger)
	studentDashboardService := service.NewStudentDashboardService(courseRepo, assignmentRepo, nil, time.Minute, logger)

	app := fiber.New()
	router.Register(app, config.Config{AppName: "Academy Test", JWTSecret: testSecret}, router.Dependencies{
		AuthHandler:       handler.NewAuthHandler(authService, time.Hour, false, logger),
		AdminHandler:      handler.NewAdminHandler(userService, courseService, enrollmentService, announcementService, adminDashboardService, activityService, logger),
		StaffHandler:      handler.NewStaffHandler(courseService, enrollmentService, assignmentService, staffDashboardService, logger),
		AssignmentHandler: handler.NewAssignmentHandler(assignmentService, logger),
		StudentHandler:    handler.NewStudentHandler(studentDashboardService, assignmentService, enrollmentService, announcementService, logger),
	})

	return &testEnv{app: app, db: db}
}

func (e *testEnv) seedUser(t *testing.T, name, email, password, role string) models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	user := models.User{Name: name, Email: email, PasswordHash: string(hash), Role: role}
	require.NoError(t, e.db.Create(&user).Error)
	return user
}

func (e *testEnv) seedCourse(t *testing.T, title string, instructorID *uint) models.Course {
	t.Helper()
	course := models.Course{Title: title, Description: "seeded", InstructorID: instructorID, StartDate: time.Now(), CreditHours: 3}
	require.NoError(t, e.db.Create(&course).Error)
	return course
}

func tokenFor(t *testing.T, user models.User) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub":  user.ID,
		"role": user.Role,
		"exp":  time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func (e *testEnv) request(t *testing.T, method, target string, body io.Reader, user *models.User, contentType string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, target, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if user != nil {
		req.AddCookie(&http.Cookie{Name: middleware.TokenCookie, Value: tokenFor(t, *user)})
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func jsonBody(t *testing.T, payload interface{}) *bytes.Buffer {
	t.Helper()
	body := &bytes.Buffer{}
	require.NoError(t, json.NewEncoder(body).Encode(payload))
	return body
}

func decodeEnvelope(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	defer resp.Body.Close()
	var payload map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	return payload
}

func TestLoginSetsSessionCookie(t *testing.T) {
	env := setupAPI(t)
	env.seedUser(t, "Admin", "admin@example.com", "sup3rsecret", models.RoleAdmin)

	body := jsonBody(t, map[string]string{"email": "admin@example.com", "password": "sup3rsecret"})
	resp := env.request(t, http.MethodPost, "/api/auth/login", body, nil, fiber.MIMEApplicationJSON)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var sessionCookie *http.Cookie
	for _, cookie := range resp.Cookies() {
		if cookie.Name == middleware.TokenCookie {
			sessionCookie = cookie
		}
	}
	require.NotNil(t, sessionCookie)
	require.NotEmpty(t, sessionCookie.Value)
	require.True(t, sessionCookie.HttpOnly)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	env := setupAPI(t)
	env.seedUser(t, "Admin", "admin@example.com", "sup3rsecret", models.RoleAdmin)

	body := jsonBody(t, map[string]string{"email": "admin@example.com", "password": "nope"})
	resp := env.request(t, http.MethodPost, "/api/auth/login", body, nil, fiber.MIMEApplicationJSON)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestCreateUserRequiresAdminRole(t *testing.T) {
	env := setupAPI(t)
	admin := env.seedUser(t, "Admin", "admin@example.com", "sup3rsecret", models.RoleAdmin)
	student := env.seedUser(t, "Student", "student@example.com", "sup3rsecret", models.RoleStudent)

	payload := map[string]string{
		"name":     "New Student",
		"email":    "new@example.com",
		"password": "secret123",
		"role":     "student",
		"program":  "BSSE",
	}

	resp := env.request(t, http.MethodPost, "/api/admin/create-user", jsonBody(t, payload), &student, fiber.MIMEApplicationJSON)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp = env.request(t, http.MethodPost, "/api/admin/create-user", jsonBody(t, payload), &admin, fiber.MIMEApplicationJSON)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	// Provisioning the same email twice conflicts.
	resp = env.request(t, http.MethodPost, "/api/admin/create-user", jsonBody(t, payload), &admin, fiber.MIMEApplicationJSON)
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestEnrollStudentConflictOnDuplicate(t *testing.T) {
	env := setupAPI(t)
	admin := env.seedUser(t, "Admin", "admin@example.com", "sup3rsecret", models.RoleAdmin)
	student := env.seedUser(t, "Student", "student@example.com", "sup3rsecret", models.RoleStudent)
	course := env.seedCourse(t, "Databases", nil)

	target := fmt.Sprintf("/api/admin/courses/%d/enroll/%d", course.ID, student.ID)

	resp := env.request(t, http.MethodPut, target, nil, &admin, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = env.request(t, http.MethodPut, target, nil, &admin, "")
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestAttendanceMarkAndStudentView(t *testing.T) {
	env := setupAPI(t)
	admin := env.seedUser(t, "Admin", "admin@example.com", "sup3rsecret", models.RoleAdmin)
	staff := env.seedUser(t, "Staff", "staff@example.com", "sup3rsecret", models.RoleStaff)
	student := env.seedUser(t, "Student", "student@example.com", "sup3rsecret", models.RoleStudent)
	course := env.seedCourse(t, "Networks", &staff.ID)

	enroll := fmt.Sprintf("/api/admin/courses/%d/enroll/%d", course.ID, student.ID)
	resp := env.request(t, http.MethodPut, enroll, nil, &admin, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	mark := fmt.Sprintf("/api/staff/courses/%d/attendance/%d", course.ID, student.ID)
	body := jsonBody(t, map[string]string{"date": "2026-03-02", "status": "present"})
	resp = env.request(t, http.MethodPut, mark, body, &staff, fiber.MIMEApplicationJSON)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	// Re-marking the same day overwrites instead of appending.
	body = jsonBody(t, map[string]string{"date": "2026-03-02", "status": "absent"})
	resp = env.request(t, http.MethodPut, mark, body, &staff, fiber.MIMEApplicationJSON)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	view := fmt.Sprintf("/api/student/courses/%d/attendance", course.ID)
	resp = env.request(t, http.MethodGet, view, nil, &student, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	payload := decodeEnvelope(t, resp)
	records, ok := payload["data"].([]interface{})
	require.True(t, ok)
	require.Len(t, records, 1)
	record := records[0].(map[string]interface{})
	require.Equal(t, "absent", record["status"])
}

func TestSubmitRequiresEnrollment(t *testing.T) {
	env := setupAPI(t)
	staff := env.seedUser(t, "Staff", "staff@example.com", "sup3rsecret", models.RoleStaff)
	outsider := env.seedUser(t, "Outsider", "outsider@example.com", "sup3rsecret", models.RoleStudent)
	course := env.seedCourse(t, "Compilers", &staff.ID)

	assignment := models.Assignment{CourseID: course.ID, StaffID: staff.ID, Title: "Parser lab"}
	require.NoError(t, env.db.Create(&assignment).Error)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", "answer.txt")
	require.NoError(t, err)
	_, err = part.Write([]byte("my answer"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	target := fmt.Sprintf("/api/assignments/submit/%d", assignment.ID)
	resp := env.request(t, http.MethodPost, target, body, &outsider, writer.FormDataContentType())
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestMySubmissionMissingIsNotFound(t *testing.T) {
	env := setupAPI(t)
	staff := env.seedUser(t, "Staff", "staff@example.com", "sup3rsecret", models.RoleStaff)
	student := env.seedUser(t, "Student", "student@example.com", "sup3rsecret", models.RoleStudent)
	course := env.seedCourse(t, "Algorithms", &staff.ID)

	assignment := models.Assignment{CourseID: course.ID, StaffID: staff.ID, Title: "Sorting lab"}
	require.NoError(t, env.db.Create(&assignment).Error)

	target := fmt.Sprintf("/api/student/assignments/%d/my-submission", assignment.ID)
	resp := env.request(t, http.MethodGet, target, nil, &student, "")
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestFullGradingScenario(t *testing.T) {
	env := setupAPI(t)
	admin := env.seedUser(t, "Admin", "admin@example.com", "sup3rsecret", models.RoleAdmin)
	staff := env.seedUser(t, "Staff", "staff@example.com", "sup3rsecret", models.RoleStaff)
	student := env.seedUser(t, "Student", "student@example.com", "sup3rsecret", models.RoleStudent)

	coursePayload := map[string]interface{}{
		"title":         "Operating Systems",
		"description":   "Scheduling and memory management",
		"instructor_id": staff.ID,
		"start_date":    "2026-02-01",
		"credit_hours":  3,
	}
	resp := env.request(t, http.MethodPost, "/api/admin/courses", jsonBody(t, coursePayload), &admin, fiber.MIMEApplicationJSON)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	course := decodeEnvelope(t, resp)["data"].(map[string]interface{})
	courseID := uint(course["id"].(float64))

	enroll := fmt.Sprintf("/api/admin/courses/%d/enroll/%d", courseID, student.ID)
	resp = env.request(t, http.MethodPut, enroll, nil, &admin, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	assignmentPayload := map[string]interface{}{
		"course_id":   courseID,
		"title":       "Paging lab",
		"description": "Implement a page replacement simulator",
		"due_date":    "2026-03-15",
	}
	resp = env.request(t, http.MethodPost, "/api/assignments/create", jsonBody(t, assignmentPayload), &staff, fiber.MIMEApplicationJSON)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assignment := decodeEnvelope(t, resp)["data"].(map[string]interface{})
	assignmentID := uint(assignment["id"].(float64))

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", "simulator.txt")
	require.NoError(t, err)
	_, err = part.Write([]byte("clock algorithm implementation"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	resp = env.request(t, http.MethodPost, fmt.Sprintf("/api/assignments/submit/%d", assignmentID), body, &student, writer.FormDataContentType())
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	submission := decodeEnvelope(t, resp)["data"].(map[string]interface{})
	submissionID := uint(submission["id"].(float64))

	gradePayload := map[string]string{"grade": "A+", "feedback": "Great work"}
	resp = env.request(t, http.MethodPut, fmt.Sprintf("/api/staff/assignments/%d/grade/%d", assignmentID, submissionID), jsonBody(t, gradePayload), &staff, fiber.MIMEApplicationJSON)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = env.request(t, http.MethodGet, "/api/student/dashboard", nil, &student, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	overviews, ok := decodeEnvelope(t, resp)["data"].([]interface{})
	require.True(t, ok)
	require.Len(t, overviews, 1)

	overview := overviews[0].(map[string]interface{})
	require.Equal(t, "Operating Systems", overview["course_title"])

	statuses, ok := overview["assignment_summary"].([]interface{})
	require.True(t, ok)
	require.Len(t, statuses, 1)

	status := statuses[0].(map[string]interface{})
	require.Equal(t, true, status["submitted"])
	require.Equal(t, "A+", status["grade"])
	require.Equal(t, "Great work", status["feedback"])
}

func TestActivityLogFilters(t *testing.T) {
	env := setupAPI(t)
	admin := env.seedUser(t, "Admin", "admin@example.com", "sup3rsecret", models.RoleAdmin)

	userPayload := map[string]string{
		"name":     "New Student",
		"email":    "new@example.com",
		"password": "secret123",
		"role":     "student",
		"program":  "BSSE",
	}
	resp := env.request(t, http.MethodPost, "/api/admin/create-user", jsonBody(t, userPayload), &admin, fiber.MIMEApplicationJSON)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	announcementPayload := map[string]string{
		"title":    "Midterm schedule",
		"content":  "Exams start Monday.",
		"due_date": "2026-10-12",
	}
	resp = env.request(t, http.MethodPost, "/api/admin/announcements", jsonBody(t, announcementPayload), &admin, fiber.MIMEApplicationJSON)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = env.request(t, http.MethodGet, "/api/admin/activity?action=user.created", nil, &admin, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	listing := decodeEnvelope(t, resp)["data"].(map[string]interface{})
	items, ok := listing["items"].([]interface{})
	require.True(t, ok)
	require.Len(t, items, 1)
	require.Equal(t, "user.created", items[0].(map[string]interface{})["action"])

	resp = env.request(t, http.MethodGet, fmt.Sprintf("/api/admin/activity?actor_id=%d", admin.ID), nil, &admin, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	listing = decodeEnvelope(t, resp)["data"].(map[string]interface{})
	require.EqualValues(t, 2, listing["total_items"])

	resp = env.request(t, http.MethodGet, "/api/admin/activity?actor_id=999", nil, &admin, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	listing = decodeEnvelope(t, resp)["data"].(map[string]interface{})
	require.EqualValues(t, 0, listing["total_items"])
}

func TestProtectedRoutesRejectAnonymousRequests(t *testing.T) {
	env := setupAPI(t)

	resp := env.request(t, http.MethodGet, "/api/admin/dashboard", nil, nil, "")
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestHealthEndpointIsPublic(t *testing.T) {
	env := setupAPI(t)

	resp := env.request(t, http.MethodGet, "/api/v1/health", nil, nil, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}
