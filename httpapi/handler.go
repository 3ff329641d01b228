package httpapi

import (
	"encoding/json"
	"log/slog"
	"math"
	"net/http"
	"strings"

	"github.com/0xalexb/hjarta-params/metrics"
	"github.com/0xalexb/hjarta-params/tree"
	"github.com/0xalexb/hjarta-params/variant"
)

// Content types written by the handler.
const (
	ContentTypeYAML = "application/yaml"
	ContentTypeJSON = "application/json"
)

// Option configures the handler.
type Option func(*handler)

// WithMetrics records request metrics on collector and serves its registry
// on /metrics.
func WithMetrics(collector *metrics.Collector) Option {
	return func(h *handler) {
		h.collector = collector
	}
}

// WithLogger sets the logger for request and panic logs.
func WithLogger(logger *slog.Logger) Option {
	return func(h *handler) {
		h.logger = logger
	}
}

// Parameter is one parameter of a Node response.
type Parameter struct {
	Name  string `json:"name"`
	Type  string `json:"type"`
	Value any    `json:"value"`
}

// Node is the response of GET /parameters/{node}.
type Node struct {
	Name       string      `json:"name"`
	Parameters []Parameter `json:"parameters"`
}

type handler struct {
	tree      *tree.Tree
	collector *metrics.Collector
	logger    *slog.Logger
}

// NewHandler returns the HTTP view of t wrapped in request ID, panic
// recovery and request logging middleware.
func NewHandler(t *tree.Tree, opts ...Option) http.Handler {
	h := &handler{tree: t, logger: slog.Default()}

	for _, opt := range opts {
		opt(h)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /parameters", h.document)
	mux.HandleFunc("GET /parameters/{node...}", h.node)
	mux.HandleFunc("GET /nodes", h.nodes)
	mux.HandleFunc("GET /healthz", h.health)

	if h.collector != nil {
		mux.Handle("GET /metrics", h.collector.Handler())
	}

	return RequestID()(Recovery(h.logger)(Logging(h.logger, h.collector)(mux)))
}

func (h *handler) document(w http.ResponseWriter, r *http.Request) {
	data, err := h.tree.MarshalYAML()
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to render parameters", slog.Any("error", err))
		http.Error(w, "failed to render parameters", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", ContentTypeYAML)
	_, _ = w.Write(data)
}

func (h *handler) node(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("node")

	index, found := h.tree.NodeIndex(name)
	if !found && !strings.HasPrefix(name, "/") {
		index, found = h.tree.NodeIndex("/" + name)
	}

	if !found {
		http.Error(w, "node not found", http.StatusNotFound)

		return
	}

	params := h.tree.Node(index)
	resp := Node{Name: h.tree.NodeName(index), Parameters: make([]Parameter, 0, params.Len())}

	for i := range params.Len() {
		value := params.Value(i)
		if value.IsEmpty() {
			continue
		}

		resp.Parameters = append(resp.Parameters, Parameter{
			Name:  params.Name(i),
			Type:  value.Kind().String(),
			Value: jsonValue(value),
		})
	}

	h.writeJSON(w, r, resp)
}

func (h *handler) nodes(w http.ResponseWriter, r *http.Request) {
	names := make([]string, 0, h.tree.NumNodes())
	for i := range h.tree.NumNodes() {
		names = append(names, h.tree.NodeName(i))
	}

	h.writeJSON(w, r, names)
}

func (h *handler) health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (h *handler) writeJSON(w http.ResponseWriter, r *http.Request, body any) {
	data, err := json.Marshal(body)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to encode response", slog.Any("error", err))
		http.Error(w, "failed to encode response", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", ContentTypeJSON)
	_, _ = w.Write(data)
}

// jsonValue returns the value in a JSON encodable form. JSON has no
// infinities or NaN, so non-finite doubles become their YAML spelling.
func jsonValue(value *variant.Variant) any {
	if d, ok := value.Double(); ok {
		return jsonDouble(d)
	}

	if doubles, ok := value.DoubleArray(); ok {
		out := make([]any, len(doubles))
		for i, d := range doubles {
			out[i] = jsonDouble(d)
		}

		return out
	}

	return value.Any()
}

func jsonDouble(d float64) any {
	switch {
	case math.IsNaN(d):
		return ".nan"
	case math.IsInf(d, 1):
		return ".inf"
	case math.IsInf(d, -1):
		return "-.inf"
	}

	return d
}
