package iqtest

import (
	"strings"

	"github.com/nsip/iqtest-lite/internal/store"
	"github.com/nsip/iqtest-lite/internal/util"
	"github.com/pkg/errors"
)

const (
	DefaultItemsFile = "./data/test_items.json"
	DefaultNormsFile = "./data/scoring_norms.csv"
)

type Option func(*IQTestService) error

// apply all supplied options to the service
// returns any error encountered while applying the options
func (s *IQTestService) setOptions(options ...Option) error {
	for _, opt := range options {
		if err := opt(s); err != nil {
			return err
		}
	}
	return nil
}

// name for this service instance,
// if blank a short random name is generated
func Name(name string) Option {
	return func(s *IQTestService) error {
		if name != "" {
			s.serviceName = name
			return nil
		}
		s.serviceName = util.GenerateName()
		return nil
	}
}

// id for this service instance,
// if blank a unique id is generated
func ID(id string) Option {
	return func(s *IQTestService) error {
		if id != "" {
			s.serviceID = id
			return nil
		}
		s.serviceID = util.GenerateID()
		return nil
	}
}

// host address the service listens on
func Host(hostName string) Option {
	return func(s *IQTestService) error {
		if hostName == "" {
			return errors.New("must supply a host name/address for the service")
		}
		s.serviceHost = hostName
		return nil
	}
}

// port the service listens on,
// if 0 an available port is chosen
func Port(port int) Option {
	return func(s *IQTestService) error {
		if port < 0 {
			return errors.Errorf("invalid port: %d", port)
		}
		if port != 0 {
			s.servicePort = port
			return nil
		}
		p, err := util.AvailablePort()
		if err != nil {
			return err
		}
		s.servicePort = p
		return nil
	}
}

// path of the json item catalog
func ItemsFile(path string) Option {
	return func(s *IQTestService) error {
		if path == "" {
			return errors.New("must supply a path for the test items file")
		}
		s.itemsFile = path
		return nil
	}
}

// path of the csv norm table
func NormsFile(path string) Option {
	return func(s *IQTestService) error {
		if path == "" {
			return errors.New("must supply a path for the scoring norms file")
		}
		s.normsFile = path
		return nil
	}
}

// directory of front-end files to serve under /static,
// blank disables static hosting
func StaticDir(dir string) Option {
	return func(s *IQTestService) error {
		s.staticDir = dir
		return nil
	}
}

// comma separated list of origins allowed by cors,
// blank allows all
func CORSOrigins(origins string) Option {
	return func(s *IQTestService) error {
		list := []string{}
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				list = append(list, o)
			}
		}
		if len(list) == 0 {
			list = []string{"*"}
		}
		s.corsOrigins = list
		return nil
	}
}

// use the given repository instead of reading
// the items and norms files
func WithRepository(repo store.Repository) Option {
	return func(s *IQTestService) error {
		if repo == nil {
			return errors.New("repository must not be nil")
		}
		s.repo = repo
		return nil
	}
}
