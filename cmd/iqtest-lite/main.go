package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	iqtest "github.com/nsip/iqtest-lite"
	"github.com/peterbourgon/ff/v3"
)

func main() {

	fs := flag.NewFlagSet("iqtest-lite", flag.ExitOnError)
	var (
		_           = fs.String("config", "", "config file (optional), json format.")
		serviceName = fs.String("name", "", "name for this test service instance")
		serviceID   = fs.String("id", "", "id for this test service instance, leave blank to auto-generate a unique id")
		serviceHost = fs.String("host", "localhost", "name/address of host for this service")
		servicePort = fs.Int("port", 8000, "port to run service on, if 0 will assign an available port automatically")
		itemsFile   = fs.String("items", iqtest.DefaultItemsFile, "json file holding the test items")
		normsFile   = fs.String("norms", iqtest.DefaultNormsFile, "csv file holding the scoring norms")
		staticDir   = fs.String("static", "", "directory of front-end files to serve under /static (optional)")
		corsOrigins = fs.String("cors", "*", "comma separated list of allowed cors origins")
	)

	if err := ff.Parse(fs, os.Args[1:],
		ff.WithConfigFileFlag("config"),
		ff.WithConfigFileParser(ff.JSONParser),
		ff.WithEnvVarPrefix("IQTEST_LITE"),
	); err != nil {
		fmt.Printf("\nCannot parse configuration:\n%s\n\n", err)
		os.Exit(1)
	}

	opts := []iqtest.Option{
		iqtest.Name(*serviceName),
		iqtest.ID(*serviceID),
		iqtest.Host(*serviceHost),
		iqtest.Port(*servicePort),
		iqtest.ItemsFile(*itemsFile),
		iqtest.NormsFile(*normsFile),
		iqtest.StaticDir(*staticDir),
		iqtest.CORSOrigins(*corsOrigins),
	}

	srvc, err := iqtest.New(opts...)
	if err != nil {
		fmt.Printf("\nCannot create iqtest-lite service:\n%s\n\n", err)
		os.Exit(1)
	}

	srvc.PrintConfig()

	// signal handler for shutdown
	closed := make(chan struct{})
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGTERM, os.Interrupt)
	go func() {
		<-c
		fmt.Println("\niqtest-lite shutting down")
		srvc.Shutdown()
		fmt.Println("iqtest-lite closed")
		close(closed)
	}()

	srvc.Start()

	// block until shutdown by sig-handler
	<-closed

}
