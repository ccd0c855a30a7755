package iqtest

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/nsip/iqtest-lite/internal/store"
)

const Version = "1.0.0"

type IQTestService struct {
	// embedded web server to handle test requests
	e *echo.Echo
	// the unique name of this service when running multiple instances
	serviceName string
	// the unique id of this service when running multiple instances
	serviceID string
	// the host address this service instance is running on
	serviceHost string
	// the port that this service instance is running on
	servicePort int
	// location of the item catalog
	itemsFile string
	// location of the norm table
	normsFile string
	// optional front-end directory
	staticDir string
	// origins accepted by the cors middleware
	corsOrigins []string
	// source of items and norms
	repo store.Repository
}

// create a new service instance
func New(options ...Option) (*IQTestService, error) {

	srvc := IQTestService{
		serviceHost: "localhost",
		itemsFile:   DefaultItemsFile,
		normsFile:   DefaultNormsFile,
		corsOrigins: []string{"*"},
	}

	if err := srvc.setOptions(options...); err != nil {
		return nil, err
	}
	if srvc.serviceName == "" {
		_ = Name("")(&srvc)
	}
	if srvc.serviceID == "" {
		_ = ID("")(&srvc)
	}
	if srvc.repo == nil {
		srvc.repo = store.NewFileRepository(srvc.itemsFile, srvc.normsFile)
	}

	srvc.e = echo.New()
	srvc.e.Logger.SetLevel(log.INFO)
	srvc.e.Use(middleware.Recover())
	srvc.e.Use(middleware.Logger())
	srvc.e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: srvc.corsOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodHead, http.MethodPost, http.MethodOptions},
	}))

	srvc.e.GET("/", srvc.rootHandler)
	srvc.e.GET("/api/health", srvc.healthHandler)
	srvc.e.GET("/api/test-items", srvc.buildItemsHandler())
	srvc.e.POST("/api/submit", srvc.buildSubmitHandler())
	if srvc.staticDir != "" {
		srvc.e.Static("/static", srvc.staticDir)
	}

	return &srvc, nil
}

// the http handler for the service, useful when embedding
// or testing without starting a listener
func (s *IQTestService) Handler() http.Handler {
	return s.e
}

// start the service running
func (s *IQTestService) Start() {

	address := fmt.Sprintf("%s:%d", s.serviceHost, s.servicePort)
	go func(addr string) {
		if err := s.e.Start(addr); err != nil && err != http.ErrServerClosed {
			s.e.Logger.Info("error starting server: ", err, ", shutting down...")
			// attempt clean shutdown by raising sig int
			p, _ := os.FindProcess(os.Getpid())
			p.Signal(os.Interrupt)
		}
	}(address)

}

// shut the server down gracefully
func (s *IQTestService) Shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.e.Shutdown(ctx); err != nil {
		s.e.Logger.Error("could not shut down server cleanly: ", err)
	}
}

func (s *IQTestService) PrintConfig() {

	fmt.Println("\n\tIQ Test Lite Service Configuration")
	fmt.Println("\t------------------------------------")

	s.printID()
	s.printDataConfig()
	fmt.Println()

}

func (s *IQTestService) printID() {
	fmt.Println("\tservice name:\t\t", s.serviceName)
	fmt.Println("\tservice ID:\t\t", s.serviceID)
	fmt.Println("\tservice host:\t\t", s.serviceHost)
	fmt.Println("\tservice port:\t\t", s.servicePort)
}

func (s *IQTestService) printDataConfig() {
	if fr, ok := s.repo.(*store.FileRepository); ok {
		fmt.Println("\ttest items file:\t", fr.ItemsPath())
		fmt.Println("\tscoring norms file:\t", fr.NormsPath())
	} else {
		fmt.Printf("\trepository:\t\t %T\n", s.repo)
	}
	if s.staticDir != "" {
		fmt.Println("\tstatic dir:\t\t", s.staticDir)
	}
	fmt.Println("\tcors origins:\t\t", strings.Join(s.corsOrigins, ","))
}
