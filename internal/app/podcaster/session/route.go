package session

// Views selected by Resolve
const (
	ViewLoading   = "loading"
	ViewHome      = "home"
	ViewLogin     = "login"
	ViewSignUp    = "signup"
	ViewDashboard = "dashboard"
	ViewNotFound  = "not-found"
)

// LoginPath is where anonymous users are sent
const LoginPath = "/login"

// Route is a view to show, or a redirect when Redirect is set
type Route struct {
	View     string
	Redirect string
}

var routes = map[string]struct {
	view      string
	protected bool
}{
	"/":          {ViewHome, false},
	"/login":     {ViewLogin, false},
	"/signup":    {ViewSignUp, false},
	"/home":      {ViewHome, true},
	"/dashboard": {ViewDashboard, true},
}

// Resolve path against current session state
func Resolve(path string) Route {
	if !Resolved() {
		return Route{View: ViewLoading}
	}
	r, ok := routes[path]
	if !ok {
		return Route{View: ViewNotFound}
	}
	if r.protected && !IsAuthenticated() {
		return Route{Redirect: LoginPath}
	}
	return Route{View: r.view}
}
