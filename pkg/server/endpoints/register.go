package endpoints

import (
	"github.com/modeladmin/madmin/pkg/server"
	"github.com/modeladmin/madmin/pkg/server/middleware"
)

// modelPattern matches a "namespace.Name" identifier path segment. The
// registry decides whether it resolves; the route only keeps arbitrary
// paths from reaching the handlers.
const modelPattern = "{model:[0-9A-Za-z_]+[.][0-9A-Za-z_]+}"

// RegisterAll wires every endpoint onto the server's router behind the
// token authenticator.
func RegisterAll(s *server.Server, auth *middleware.Authenticator) {
	s.Router.Use(auth.Middleware)
	RegisterPanel(s)
	RegisterRecords(s)
	RegisterAPI(s)
	RegisterHelp(s)
}
