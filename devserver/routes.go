package devserver

const (
	RouteSignUp    = "/signUp"
	RouteLogin     = "/login"
	RouteRefresh   = "/refresh"
	RouteExam      = "/exam/android"
	RouteHealthz   = "/healthz"
	emailQueryName = "email"
)

func (s *Server) initRoutes() {
	s.RegisterRouteFunc("POST "+RouteSignUp, s.SignUpHandler())
	s.RegisterRouteFunc("POST "+RouteLogin, s.LoginHandler())
	s.RegisterRouteFunc("POST "+RouteRefresh, s.RefreshHandler())

	// Protected (requires a valid access token)
	s.RegisterRouteFunc("GET "+RouteExam, s.ExamHandler())

	s.RegisterRouteFunc("GET "+RouteHealthz, s.HealthHandler())
}
