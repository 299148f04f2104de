package server

import (
	"net/http"
	"os"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/modeladmin/madmin/pkg/config"
	"github.com/modeladmin/madmin/pkg/registry"
	"github.com/modeladmin/madmin/pkg/server/store"
	storegorm "github.com/modeladmin/madmin/pkg/server/store/gorm"
)

type Server struct {
	Registry    *registry.Registry
	Router      *mux.Router
	DB          *gorm.DB
	Config      *config.Config
	Selection   store.SelectionStore
	Permissions store.PermissionStore
	Instances   store.InstanceStore
	srv         *http.Server
}

func NewServer(
	reg *registry.Registry,
	db *gorm.DB,
	cfg *config.Config,
	host string,
	port string,
) *Server {

	router := mux.NewRouter().UseEncodedPath()
	srv := &http.Server{
		Handler: handlers.LoggingHandler(os.Stdout, router),
		Addr:    host + ":" + port,
		// Good practice: enforce timeouts for servers you create!
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}

	return &Server{
		Registry:    reg,
		Router:      router,
		DB:          db,
		Config:      cfg,
		Selection:   storegorm.NewSelectionStore(db),
		Permissions: storegorm.NewPermissionStore(db),
		Instances:   storegorm.NewInstanceStore(db),
		srv:         srv,
	}
}

func (s *Server) Start() error {
	return s.srv.ListenAndServe()
}
