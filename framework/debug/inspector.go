// Package debug serves a read-only JSON view of a container: which services
// are declared, which are built, and the parameter store.
package debug

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/km-arc/go-genius/framework/container"
	gohttp "github.com/km-arc/go-genius/framework/http"
	"github.com/km-arc/go-genius/framework/routing"
)

// Prefix is where Routes mounts the inspector.
const Prefix = "/_container"

// ServiceInfo describes one declared service.
type ServiceInfo struct {
	Name     string `json:"name"`
	Resolved bool   `json:"resolved"`
}

// Inspector exposes container state over HTTP. It never builds services.
type Inspector struct {
	container *container.Container
	logger    *zap.Logger
}

// NewInspector creates an inspector for c.
func NewInspector(c *container.Container) *Inspector {
	return &Inspector{container: c, logger: zap.NewNop()}
}

// SetLogger sets the logger used for request logging.
func (i *Inspector) SetLogger(logger *zap.Logger) {
	i.logger = logger
}

// Routes registers the inspector endpoints under Prefix.
//
//	GET /_container/services[?resolved=true|false]
//	GET /_container/services/{name}
//	GET /_container/parameters
//	GET /_container/parameters/{path}
func (i *Inspector) Routes(r *routing.Router) {
	r.Prefix(Prefix, func(r *routing.Router) {
		r.Get("/services", i.services)
		r.Get("/services/{name}", i.service)
		r.Get("/parameters", i.parameters)
		r.Get("/parameters/{path}", i.parameter)
	})
}

// Handler returns a standalone router serving only the inspector.
func (i *Inspector) Handler() http.Handler {
	r := routing.New(i.logger)
	i.Routes(r)
	return r
}

func (i *Inspector) services(w http.ResponseWriter, r *http.Request) {
	req := gohttp.NewRequest(r)
	res := gohttp.NewResponse(w)

	resolved, filter, err := req.QueryBool("resolved")
	if err != nil {
		res.Error(http.StatusBadRequest, err.Error())
		return
	}

	names := i.container.Names()
	out := make([]ServiceInfo, 0, len(names))
	for _, name := range names {
		info := ServiceInfo{Name: name, Resolved: i.container.Resolved(name)}
		if filter && info.Resolved != resolved {
			continue
		}
		out = append(out, info)
	}
	res.Success(out)
}

func (i *Inspector) service(w http.ResponseWriter, r *http.Request) {
	req := gohttp.NewRequest(r)
	res := gohttp.NewResponse(w)
	name := req.RouteParam("name")

	if !i.container.Has(name) {
		res.NotFound((&container.ServiceNotFoundError{Name: name}).Error())
		return
	}
	res.Success(ServiceInfo{Name: name, Resolved: i.container.Resolved(name)})
}

func (i *Inspector) parameters(w http.ResponseWriter, _ *http.Request) {
	gohttp.NewResponse(w).Success(i.container.Parameters())
}

func (i *Inspector) parameter(w http.ResponseWriter, r *http.Request) {
	path := gohttp.NewRequest(r).RouteParam("path")
	res := gohttp.NewResponse(w)

	value, err := i.container.GetParameter(path)
	if err != nil {
		i.logger.Debug("parameter lookup failed", zap.String("path", path), zap.Error(err))
		res.NotFound(err.Error())
		return
	}
	res.Success(map[string]any{"path": path, "value": value})
}
