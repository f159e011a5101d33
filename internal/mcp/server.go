package mcpserver

import (
	"context"
	"database/sql"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/sirupsen/logrus"

	"storefront/internal/service"
)

// Server is the MCP server for the storefront builder.
// It exposes tools, resources, and prompts so AI agents can edit the page
// open in the builder.
type Server struct {
	mcp       *server.MCPServer
	emitter   EventEmitter
	approval  *ApprovalQueue
	editor    *service.EditorService
	log       logrus.FieldLogger
	syncState bool // reload the tree persisted by the desktop app before every tool call
}

// Deps holds all dependencies passed from the App layer to the MCP server.
type Deps struct {
	Emitter    EventEmitter
	Editor     *service.EditorService
	ApprovalDB *sql.DB // When set, use SQLite-based approval (standalone mode)
	Log        logrus.FieldLogger
	SyncState  bool // start every tool call from the persisted editor state
}

// New creates and configures a new MCP server with all tools and resources.
func New(deps Deps) *Server {
	log := deps.Log
	if log == nil {
		log = logrus.StandardLogger()
	}
	emitter := deps.Emitter
	if emitter == nil {
		emitter = service.NopEmitter{}
	}
	approval := NewApprovalQueue(emitter, log)
	if deps.ApprovalDB != nil {
		approval.SetDB(deps.ApprovalDB)
	}
	s := &Server{
		emitter:   emitter,
		approval:  approval,
		editor:    deps.Editor,
		log:       log.WithField("component", "mcp"),
		syncState: deps.SyncState,
	}

	s.mcp = server.NewMCPServer(
		"storefront-builder-mcp",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
		server.WithPromptCapabilities(true),
	)

	s.registerPageTools()
	s.registerSectionTools()
	s.registerHistoryTools()
	s.registerResources()
	s.registerPrompts()

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	s.log.Info("starting stdio server")
	return server.ServeStdio(s.mcp)
}

// Approvals exposes the queue so the app can list and resolve actions.
func (s *Server) Approvals() *ApprovalQueue {
	return s.approval
}

// Approve forwards a user approval to the approval queue.
func (s *Server) Approve(actionID string) bool {
	return s.approval.Approve(actionID)
}

// Reject forwards a user rejection to the approval queue.
func (s *Server) Reject(actionID string) bool {
	return s.approval.Reject(actionID)
}

// addTool registers a tool, reloading the shared editor state first when
// syncState is set.
func (s *Server) addTool(tool mcp.Tool, handler server.ToolHandlerFunc) {
	if !s.syncState {
		s.mcp.AddTool(tool, handler)
		return
	}
	s.mcp.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if _, err := s.editor.Reload(ctx); err != nil {
			s.log.WithError(err).Warn("reload editor state")
		}
		return handler(ctx, req)
	})
}

// requireApproval wraps ApprovalQueue.Request with the request context.
func (s *Server) requireApproval(ctx context.Context, tool, description, metadata string) error {
	return s.approval.Request(ctx, tool, description, metadata)
}
