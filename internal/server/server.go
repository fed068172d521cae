package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	document "github.com/hanpama/gqlnorm/internal/document"
	eventbus "github.com/hanpama/gqlnorm/internal/eventbus"
	events "github.com/hanpama/gqlnorm/internal/events"
	normalize "github.com/hanpama/gqlnorm/internal/normalize"
	reqid "github.com/hanpama/gqlnorm/internal/reqid"
	schema "github.com/hanpama/gqlnorm/internal/schema"
	validation "github.com/hanpama/gqlnorm/internal/validation"
)

// Handler is an http.Handler that parses, fragment-expands and validates
// GraphQL request documents, responding with the normalized tree as JSON.
type Handler struct {
	schema *schema.Schema
	opt    Options
}

type Options struct {
	// Timeout sets a default timeout if the incoming request context has none.
	// 0 means no default timeout.
	Timeout time.Duration

	// Pretty enables indented JSON responses (useful for dev).
	Pretty bool

	// MaxBodyBytes limits the size of the request body. 0 means unlimited.
	MaxBodyBytes int64

	// CORS configuration. If AllowedOrigins is empty, CORS is disabled.
	CORS CORSOptions

	// LegacyValidation keeps the original root-type check, whose mutation
	// branch consulted the schema's query type.
	LegacyValidation bool
}

type Option func(*Options)

func WithTimeout(d time.Duration) Option { return func(o *Options) { o.Timeout = d } }
func WithPretty() Option                 { return func(o *Options) { o.Pretty = true } }
func WithMaxBodyBytes(n int64) Option    { return func(o *Options) { o.MaxBodyBytes = n } }
func WithCORS(origins ...string) Option {
	return func(o *Options) { o.CORS.AllowedOrigins = origins }
}
func WithLegacyValidation() Option { return func(o *Options) { o.LegacyValidation = true } }

// CORSOptions holds simple CORS settings.
type CORSOptions struct {
	AllowedOrigins []string
}

// New creates a handler validating against the given schema capabilities.
func New(s *schema.Schema, opts ...Option) *Handler {
	op := Options{Timeout: 10 * time.Second}
	for _, f := range opts {
		f(&op)
	}
	return &Handler{schema: s, opt: op}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if _, ok := ctx.Deadline(); !ok && h.opt.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.opt.Timeout)
		defer cancel()
	}

	ctx, _ = reqid.NewContext(ctx)
	status := http.StatusOK
	start := time.Now()
	eventbus.Publish(ctx, events.HTTPStart{Request: r})
	defer func() {
		eventbus.Publish(ctx, events.HTTPFinish{Request: r, Status: status, Duration: time.Since(start)})
	}()

	if r.Method == http.MethodOptions {
		if len(h.opt.CORS.AllowedOrigins) > 0 {
			setCORSHeaders(w, r, h.opt.CORS)
		}
		status = http.StatusNoContent
		w.WriteHeader(status)
		return
	}

	if r.Method != http.MethodPost && r.Method != http.MethodGet {
		status = http.StatusMethodNotAllowed
		writeJSON(w, status, errorResponse("method not allowed"), h.opt.Pretty)
		return
	}

	req, batch, msg := parseRequest(r, h.opt.MaxBodyBytes)
	if msg != "" {
		status = http.StatusBadRequest
		if msg == errBodyTooLargeMessage {
			status = http.StatusRequestEntityTooLarge
		}
		writeJSON(w, status, errorResponse(msg), h.opt.Pretty)
		return
	}

	if len(h.opt.CORS.AllowedOrigins) > 0 {
		setCORSHeaders(w, r, h.opt.CORS)
	}

	if batch != nil {
		out := make([]any, len(batch))
		for i := range batch {
			out[i] = h.normalizeOne(ctx, batch[i])
		}
		writeJSON(w, status, out, h.opt.Pretty)
		return
	}

	writeJSON(w, status, h.normalizeOne(ctx, req), h.opt.Pretty)
}

func (h *Handler) normalizeOne(ctx context.Context, req NormalizeRequest) any {
	start := time.Now()
	doc, err := document.Parse(req.Query)
	if err != nil {
		eventbus.Publish(ctx, events.NormalizeFinish{
			Query:    req.Query,
			Err:      err,
			Duration: time.Since(start),
		})
		return errorResponse(err.Error())
	}

	op := document.FindOperation(doc)
	eventbus.Publish(ctx, events.NormalizeStart{
		Query:         req.Query,
		OperationName: op.OperationName(),
		OperationType: op.Type(),
	})

	expanded := normalize.ExpandDocument(doc)
	result := validation.Validate(expanded, h.schema)
	if h.opt.LegacyValidation {
		result = validation.ValidateLegacy(expanded, h.schema)
	}

	eventbus.Publish(ctx, events.NormalizeFinish{
		Query:         req.Query,
		OperationName: op.OperationName(),
		OperationType: op.Type(),
		Validation:    string(result),
		Duration:      time.Since(start),
	})

	res := NormalizeResponse{Document: expanded, Validation: result}
	if op != nil {
		res.Operation = &OperationInfo{Type: op.Type(), Name: op.OperationName()}
	}
	return res
}

// ------------------ Request parsing ------------------

type NormalizeRequest struct {
	Query string `json:"query"`
}

// NormalizeResponse is the JSON body of a successful normalization.
type NormalizeResponse struct {
	Document   document.Document `json:"document"`
	Operation  *OperationInfo    `json:"operation,omitempty"`
	Validation validation.Result `json:"validation"`
}

type OperationInfo struct {
	Type string `json:"type"`
	Name string `json:"name,omitempty"`
}

func parseRequest(r *http.Request, maxBody int64) (NormalizeRequest, []NormalizeRequest, string) {
	if r.Method == http.MethodGet {
		q := r.URL.Query().Get("query")
		if q == "" {
			return NormalizeRequest{}, nil, "missing 'query'"
		}
		return NormalizeRequest{Query: q}, nil, ""
	}

	// POST
	ct := r.Header.Get("Content-Type")
	if ct == "" || ct == "application/json" || startsWith(ct, "application/json;") {
		reader := io.Reader(r.Body)
		if maxBody > 0 {
			reader = io.LimitReader(r.Body, maxBody+1)
		}
		body, err := io.ReadAll(reader)
		if err != nil {
			return NormalizeRequest{}, nil, "failed to read body"
		}
		defer r.Body.Close()
		if maxBody > 0 && int64(len(body)) > maxBody {
			return NormalizeRequest{}, nil, errBodyTooLargeMessage
		}

		// Try array (batch)
		if len(body) > 0 && body[0] == '[' {
			var arr []NormalizeRequest
			if err := json.Unmarshal(body, &arr); err != nil {
				return NormalizeRequest{}, nil, "invalid JSON"
			}
			if len(arr) == 0 {
				return NormalizeRequest{}, nil, "empty batch"
			}
			return NormalizeRequest{}, arr, ""
		}
		// Single
		var req NormalizeRequest
		if err := json.Unmarshal(body, &req); err != nil {
			return NormalizeRequest{}, nil, "invalid JSON"
		}
		if req.Query == "" {
			return NormalizeRequest{}, nil, "missing 'query'"
		}
		return req, nil, ""
	}

	return NormalizeRequest{}, nil, "unsupported Content-Type"
}

// ------------------ Response formatting ------------------

type responseError struct {
	Message string `json:"message"`
}

type errorResult struct {
	Document any             `json:"document"`
	Errors   []responseError `json:"errors"`
}

func errorResponse(message string) errorResult {
	return errorResult{Errors: []responseError{{Message: message}}}
}

func writeJSON(w http.ResponseWriter, status int, v any, pretty bool) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	_ = enc.Encode(v)
}

func startsWith(s, prefix string) bool { return len(s) >= len(prefix) && s[:len(prefix)] == prefix }

const errBodyTooLargeMessage = "body too large"

func setCORSHeaders(w http.ResponseWriter, r *http.Request, opts CORSOptions) {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return
	}
	allowed := false
	for _, o := range opts.AllowedOrigins {
		if o == "*" || o == origin {
			allowed = true
			break
		}
	}
	if !allowed {
		return
	}
	if contains(opts.AllowedOrigins, "*") {
		w.Header().Set("Access-Control-Allow-Origin", "*")
	} else {
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Add("Vary", "Origin")
	}
	if r.Method == http.MethodOptions {
		if hdr := r.Header.Get("Access-Control-Request-Headers"); hdr != "" {
			w.Header().Set("Access-Control-Allow-Headers", hdr)
		}
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
