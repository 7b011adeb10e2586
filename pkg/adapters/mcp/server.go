// Package mcp exposes experiment planning and the recorded runs as a Model
// Context Protocol server, so agents can inspect timelines as tools and
// resources.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aretw0/cadence"
	"github.com/aretw0/cadence/pkg/config"
	"github.com/aretw0/cadence/pkg/domain"
	"github.com/aretw0/cadence/pkg/ports"
	"github.com/go-chi/chi/v5"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const (
	timelineURI = "cadence://timeline"
	runsURI     = "cadence://runs"
	runURIs     = "cadence://runs/{run_id}"
)

// PlanArgs are the arguments of the plan_timeline tool.
type PlanArgs struct {
	Condition string  `json:"condition"`
	Seed      *uint64 `json:"seed,omitempty"`
}

// PlanResponse is the result of the plan_timeline tool.
type PlanResponse struct {
	Preset   string          `json:"preset" jsonschema_description:"Canonical name of the condition preset"`
	Seed     uint64          `json:"seed" jsonschema_description:"Seed that reproduces this timeline"`
	Schedule domain.Schedule `json:"schedule" jsonschema_description:"Naive and reconciled total durations"`
	Trials   []domain.Trial  `json:"trials" jsonschema_description:"Trials in presentation order"`
}

// TrialArgs are the arguments of the get_trial tool. Without a condition the
// trial is read from the served timeline.
type TrialArgs struct {
	Index     int     `json:"index"`
	Condition string  `json:"condition,omitempty"`
	Seed      *uint64 `json:"seed,omitempty"`
}

// Server wraps the experiment settings and exposes them as an MCP server.
type Server struct {
	settings  *config.Settings
	timeline  *domain.Timeline
	log       ports.EventLog
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// Option configures a Server.
type Option func(*Server)

// WithTimeline sets the timeline served by get_trial and cadence://timeline.
func WithTimeline(tl *domain.Timeline) Option {
	return func(s *Server) {
		s.timeline = tl
	}
}

// WithEventLog exposes the recorded runs as resources.
func WithEventLog(log ports.EventLog) Option {
	return func(s *Server) {
		s.log = log
	}
}

// WithLogger sets the logger of the tool handlers.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates a new MCP server planning with settings. A nil settings
// value uses config.Default().
func NewServer(settings *config.Settings, opts ...Option) *Server {
	if settings == nil {
		settings = config.Default()
	}
	s := &Server{
		settings: settings,
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.mcpServer = server.NewMCPServer("cadence", strings.TrimSpace(cadence.Version),
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio serves JSON-RPC over in and out until ctx is cancelled or in
// is exhausted.
func (s *Server) ServeStdio(ctx context.Context, in io.Reader, out io.Writer) error {
	err := server.NewStdioServer(s.mcpServer).Listen(ctx, in, out)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// SSEHandler returns the SSE transport. It must be mounted at /mcp of the
// server reachable at baseURL.
func (s *Server) SSEHandler(baseURL string) http.Handler {
	sse := server.NewSSEServer(s.mcpServer,
		server.WithBaseURL(strings.TrimSuffix(baseURL, "/")),
		server.WithSSEEndpoint("/mcp/sse"),
		server.WithMessageEndpoint("/mcp/message"),
	)
	r := chi.NewRouter()
	r.Method(http.MethodGet, "/sse", sse.SSEHandler())
	r.Method(http.MethodPost, "/message", sse.MessageHandler())
	return r
}

func (s *Server) registerTools() {
	planTool := mcp.NewTool("plan_timeline",
		mcp.WithDescription("Plan the trial timeline of a condition preset. The same condition and seed always give the same timeline."),
		mcp.WithString("condition", mcp.Required(), mcp.Description("Condition preset, e.g. RL, RBL, star or demo")),
		mcp.WithNumber("seed", mcp.Description("Random seed (optional; a random seed is drawn and returned otherwise)")),
		mcp.WithOutputSchema[PlanResponse](),
	)
	s.mcpServer.AddTool(planTool, mcp.NewStructuredToolHandler(s.handlePlan))

	trialTool := mcp.NewTool("get_trial",
		mcp.WithDescription("Get one trial with its phases. Reads the served timeline unless a condition is given."),
		mcp.WithNumber("index", mcp.Required(), mcp.Description("Trial index, starting at 0")),
		mcp.WithString("condition", mcp.Description("Condition preset to plan instead of the served timeline")),
		mcp.WithNumber("seed", mcp.Description("Seed used with condition")),
		mcp.WithOutputSchema[domain.Trial](),
	)
	s.mcpServer.AddTool(trialTool, mcp.NewStructuredToolHandler(s.handleGetTrial))
}

func (s *Server) plan(condition string, seed *uint64) (*cadence.Experiment, *domain.Timeline, error) {
	opts := []cadence.Option{cadence.WithLogger(s.logger)}
	if seed != nil {
		opts = append(opts, cadence.WithSeed(*seed))
	}
	exp, err := cadence.New(s.settings, condition, opts...)
	if err != nil {
		return nil, nil, err
	}
	tl, err := exp.Plan()
	if err != nil {
		return nil, nil, err
	}
	return exp, tl, nil
}

func (s *Server) handlePlan(ctx context.Context, request mcp.CallToolRequest, args PlanArgs) (PlanResponse, error) {
	if args.Condition == "" {
		return PlanResponse{}, errors.New("condition is required")
	}
	exp, tl, err := s.plan(args.Condition, args.Seed)
	if err != nil {
		s.logger.Warn("MCP plan_timeline failed", "condition", args.Condition, "error", err)
		return PlanResponse{}, err
	}
	s.logger.Debug("MCP plan_timeline", "preset", exp.Preset.Name, "seed", exp.Seed())
	return PlanResponse{
		Preset:   exp.Preset.Name,
		Seed:     exp.Seed(),
		Schedule: tl.Schedule,
		Trials:   tl.Trials,
	}, nil
}

func (s *Server) handleGetTrial(ctx context.Context, request mcp.CallToolRequest, args TrialArgs) (domain.Trial, error) {
	tl := s.timeline
	if args.Condition != "" {
		_, planned, err := s.plan(args.Condition, args.Seed)
		if err != nil {
			return domain.Trial{}, err
		}
		tl = planned
	}
	if tl == nil {
		return domain.Trial{}, errors.New("no timeline served; pass a condition")
	}
	if args.Index < 0 || args.Index >= len(tl.Trials) {
		return domain.Trial{}, fmt.Errorf("trial %d not found (timeline has %d trials)", args.Index, len(tl.Trials))
	}
	return tl.Trials[args.Index], nil
}

func (s *Server) registerResources() {
	if s.timeline != nil {
		s.mcpServer.AddResource(mcp.NewResource(timelineURI, "Served timeline",
			mcp.WithResourceDescription("The timeline planned at startup"),
			mcp.WithMIMEType("application/json"),
		), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
			return jsonContents(timelineURI, s.timeline)
		})
	}

	if s.log == nil {
		return
	}
	s.mcpServer.AddResource(mcp.NewResource(runsURI, "Recorded runs",
		mcp.WithResourceDescription("IDs of the runs in the event log"),
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		runs, err := s.log.Runs(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list runs: %w", err)
		}
		if runs == nil {
			runs = []string{}
		}
		return jsonContents(runsURI, runs)
	})

	s.mcpServer.AddResourceTemplate(mcp.NewResourceTemplate(runURIs, "Run records",
		mcp.WithTemplateDescription("Records of one run in order"),
		mcp.WithTemplateMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		uri := request.Params.URI
		runID := strings.TrimPrefix(uri, runsURI+"/")
		if runID == "" || runID == uri {
			return nil, fmt.Errorf("invalid run resource %q", uri)
		}
		records, err := s.log.List(ctx, runID)
		if err != nil {
			return nil, err
		}
		return jsonContents(uri, records)
	})
}

func jsonContents(uri string, v any) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", uri, err)
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
