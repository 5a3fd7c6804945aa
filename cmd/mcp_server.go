package cmd

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image/png"
	"sync"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"gopkg.in/yaml.v3"

	"github.com/spiralbot/spiralbot/internal/element"
	"github.com/spiralbot/spiralbot/internal/output"
)

// mcpServer wraps the MCP server with the detection and automation stack.
// The provider mutex serializes tool calls: the OS has a single pointer and
// keyboard focus, so two input events must never overlap.
type mcpServer struct {
	stack   *stack
	stackMu sync.Mutex
	mcp     *mcpserver.MCPServer
}

// MCPConfig holds MCP server configuration.
type MCPConfig struct {
	Transport string
	Port      int
}

// newMCPServer creates and configures an MCP server with all spiralbot tools.
func newMCPServer() (*mcpServer, error) {
	s := &mcpServer{stack: newStack()}

	s.mcp = mcpserver.NewMCPServer(
		"spiralbot",
		"1.0.0",
	)

	s.registerTools()
	return s, nil
}

// serve starts the MCP server with the configured transport.
func (s *mcpServer) serve(cfg MCPConfig) error {
	switch cfg.Transport {
	case "stdio":
		return mcpserver.ServeStdio(s.mcp)
	case "streamable-http":
		httpServer := mcpserver.NewStreamableHTTPServer(s.mcp)
		return httpServer.Start(fmt.Sprintf(":%d", cfg.Port))
	default:
		return fmt.Errorf("unsupported transport: %s (use stdio or streamable-http)", cfg.Transport)
	}
}

func (s *mcpServer) registerTools() {
	// detect
	s.mcp.AddTool(
		mcp.NewTool("detect",
			mcp.WithDescription("Detect a game UI element on screen by template image, OCR text, or both. Returns strategy, confidence, bounding box, and center."),
			mcp.WithString("name", mcp.Description("Logical element name")),
			mcp.WithString("template", mcp.Description("Template asset name (e.g. game/play_button.png)")),
			mcp.WithString("text", mcp.Description("Text to locate via OCR")),
			mcp.WithNumber("threshold", mcp.Description("Confidence threshold 0-1 (default from config)")),
			mcp.WithNumber("fallback-x", mcp.Description("Fixed fallback X coordinate")),
			mcp.WithNumber("fallback-y", mcp.Description("Fixed fallback Y coordinate")),
		),
		s.handleDetect,
	)

	// click
	s.mcp.AddTool(
		mcp.NewTool("click",
			mcp.WithDescription("Detect a UI element and click its center, with detection retries"),
			mcp.WithString("name", mcp.Description("Logical element name")),
			mcp.WithString("template", mcp.Description("Template asset name")),
			mcp.WithString("text", mcp.Description("Text to locate via OCR")),
			mcp.WithNumber("threshold", mcp.Description("Confidence threshold 0-1")),
			mcp.WithNumber("fallback-x", mcp.Description("Fixed fallback X coordinate")),
			mcp.WithNumber("fallback-y", mcp.Description("Fixed fallback Y coordinate")),
		),
		s.handleClick,
	)

	// type
	s.mcp.AddTool(
		mcp.NewTool("type",
			mcp.WithDescription("Detect an input field, focus it, select its contents, and type replacement text"),
			mcp.WithString("text", mcp.Description("Text to type"), mcp.Required()),
			mcp.WithString("name", mcp.Description("Logical element name")),
			mcp.WithString("template", mcp.Description("Template asset name of the input field")),
			mcp.WithNumber("fallback-x", mcp.Description("Fixed fallback X coordinate")),
			mcp.WithNumber("fallback-y", mcp.Description("Fixed fallback Y coordinate")),
		),
		s.handleType,
	)

	// wait
	s.mcp.AddTool(
		mcp.NewTool("wait",
			mcp.WithDescription("Wait for a UI element to appear or disappear"),
			mcp.WithString("name", mcp.Description("Logical element name")),
			mcp.WithString("template", mcp.Description("Template asset name")),
			mcp.WithString("text", mcp.Description("Text to locate via OCR")),
			mcp.WithBoolean("gone", mcp.Description("Wait until the element is NO LONGER detected")),
			mcp.WithNumber("timeout", mcp.Description("Max seconds to wait (default: 10)")),
			mcp.WithNumber("interval", mcp.Description("Polling interval in ms (default: 1000)")),
		),
		s.handleWait,
	)

	// read_text
	s.mcp.AddTool(
		mcp.NewTool("read_text",
			mcp.WithDescription("Read on-screen text at a point via triple-click selection and clipboard copy"),
			mcp.WithNumber("x", mcp.Description("Screen X coordinate"), mcp.Required()),
			mcp.WithNumber("y", mcp.Description("Screen Y coordinate"), mcp.Required()),
		),
		s.handleReadText,
	)

	// screenshot
	s.mcp.AddTool(
		mcp.NewTool("screenshot",
			mcp.WithDescription("Capture the screen (or a region) and return it as a PNG image"),
			mcp.WithNumber("x", mcp.Description("Region origin X")),
			mcp.WithNumber("y", mcp.Description("Region origin Y")),
			mcp.WithNumber("width", mcp.Description("Region width (0 = full screen)")),
			mcp.WithNumber("height", mcp.Description("Region height (0 = full screen)")),
			mcp.WithNumber("scale", mcp.Description("Scale factor 0.1-1.0 (default: 0.5)")),
		),
		s.handleScreenshot,
	)
}

// resultToText serializes a printable result to YAML for MCP responses.
func resultToText(v interface{}) string {
	b, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	return string(b)
}

func (s *mcpServer) criteriaFromParams(params map[string]interface{}) (element.SearchCriteria, error) {
	return criteriaFromFlags(
		StringParam(params, "name", ""),
		StringParam(params, "template", ""),
		StringParam(params, "text", ""),
		FloatParam(params, "threshold", 0),
		IntParam(params, "fallback-x", 0),
		IntParam(params, "fallback-y", 0),
	)
}

func (s *mcpServer) handleDetect(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	criteria, err := s.criteriaFromParams(request.GetArguments())
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	s.stackMu.Lock()
	defer s.stackMu.Unlock()

	el, found := s.stack.detector.Find(criteria)
	return mcp.NewToolResultText(resultToText(output.NewDetectionResult(criteria.Name, el, found))), nil
}

func (s *mcpServer) handleClick(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	criteria, err := s.criteriaFromParams(request.GetArguments())
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	s.stackMu.Lock()
	defer s.stackMu.Unlock()

	res := s.stack.ctrl.FindAndClick(criteria)
	text := resultToText(output.NewRunResult(res))
	if !res.Success() {
		return mcp.NewToolResultError(text), nil
	}
	return mcp.NewToolResultText(text), nil
}

func (s *mcpServer) handleType(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	text := StringParam(params, "text", "")
	if text == "" {
		return mcp.NewToolResultError("text parameter is required"), nil
	}

	// The "text" parameter is what gets typed, not an OCR query.
	criteria, err := criteriaFromFlags(
		StringParam(params, "name", ""),
		StringParam(params, "template", ""),
		"",
		0,
		IntParam(params, "fallback-x", 0),
		IntParam(params, "fallback-y", 0),
	)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	s.stackMu.Lock()
	defer s.stackMu.Unlock()

	res := s.stack.ctrl.FindAndType(criteria, text)
	result := resultToText(output.NewRunResult(res))
	if !res.Success() {
		return mcp.NewToolResultError(result), nil
	}
	return mcp.NewToolResultText(result), nil
}

func (s *mcpServer) handleWait(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	criteria, err := s.criteriaFromParams(params)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	timeout := time.Duration(IntParam(params, "timeout", 10)) * time.Second
	interval := time.Duration(IntParam(params, "interval", 1000)) * time.Millisecond
	gone := BoolParam(params, "gone", false)

	s.stackMu.Lock()
	defer s.stackMu.Unlock()

	wait := s.stack.ctrl.WaitForElement
	if gone {
		wait = s.stack.ctrl.WaitForElementGone
	}
	res := wait(criteria, timeout, interval)

	text := resultToText(output.NewRunResult(res))
	if !res.Success() {
		return mcp.NewToolResultError(text), nil
	}
	return mcp.NewToolResultText(text), nil
}

func (s *mcpServer) handleReadText(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	x := IntParam(params, "x", -1)
	y := IntParam(params, "y", -1)
	if x < 0 || y < 0 {
		return mcp.NewToolResultError("x and y parameters are required"), nil
	}

	s.stackMu.Lock()
	defer s.stackMu.Unlock()

	text, err := s.stack.ctrl.ReadTextAt(element.Coordinates{X: x, Y: y})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("text: %q", text)), nil
}

func (s *mcpServer) handleScreenshot(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	x := IntParam(params, "x", 0)
	y := IntParam(params, "y", 0)
	width := IntParam(params, "width", 0)
	height := IntParam(params, "height", 0)
	scale := FloatParam(params, "scale", 0.5)

	s.stackMu.Lock()
	defer s.stackMu.Unlock()

	img, err := captureArea(s.stack.provider.Capturer, x, y, width, height)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	img = scaleImage(img, scale)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.ImageContent{
				Type:     "image",
				Data:     base64.StdEncoding.EncodeToString(buf.Bytes()),
				MIMEType: "image/png",
			},
		},
	}, nil
}
