package lms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"
)

// jsonRPCPath is the server's JSON/RPC endpoint. A command is POSTed as
// {"id":1,"method":"slim.request","params":[playerID,[words...]]} and the
// parsed reply arrives under the "result" key.
const jsonRPCPath = "/jsonrpc.js"

const defaultTimeout = 10 * time.Second

// Server is the command channel to one media server instance. Every
// Player attached to the server shares it; the underlying http.Client is
// safe for concurrent use. The Server performs no retries or reconnects,
// a failed request surfaces immediately to the caller.
type Server struct {
	host       string
	port       int
	httpClient *http.Client
	verbose    bool
	logFunc    func(format string, args ...interface{})
}

// NewServer creates a handle for the server at host:port.
func NewServer(host string, port int) *Server {
	return &Server{
		host: host,
		port: port,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}
}

// SetTimeout overrides the per-request timeout.
func (s *Server) SetTimeout(d time.Duration) {
	s.httpClient.Timeout = d
}

// SetVerbose enables request tracing through logFunc.
func (s *Server) SetVerbose(verbose bool, logFunc func(format string, args ...interface{})) {
	s.verbose = verbose
	s.logFunc = logFunc
}

func (s *Server) log(format string, args ...interface{}) {
	if s.verbose && s.logFunc != nil {
		s.logFunc(format, args...)
	}
}

// Addr returns the server's host:port.
func (s *Server) Addr() string {
	return fmt.Sprintf("%s:%d", s.host, s.port)
}

// Request sends one command addressed to playerID and returns the parsed
// result mapping. An empty playerID addresses the server itself rather
// than a player. Field lookups on the result are the caller's business;
// an absent field is not an error at this layer.
func (s *Server) Request(ctx context.Context, playerID string, words ...string) (Result, error) {
	if len(words) == 0 {
		return nil, fmt.Errorf("empty command")
	}

	payload := struct {
		ID     int    `json:"id"`
		Method string `json:"method"`
		Params [2]any `json:"params"`
	}{
		ID:     1,
		Method: "slim.request",
		Params: [2]any{playerID, words},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("http://%s:%d%s", s.host, s.port, jsonRPCPath)
	s.log("[lms] player=%q command=%v", playerID, words)

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("rpc request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	s.log("[lms] response: %d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("rpc error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var parsed struct {
		Result Result `json:"result"`
	}
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}

	if parsed.Result == nil {
		parsed.Result = Result{}
	}
	return parsed.Result, nil
}

// Version returns the server's version string.
func (s *Server) Version(ctx context.Context) (string, error) {
	res, err := s.Request(ctx, "", "version", "?")
	if err != nil {
		return "", err
	}
	return stringField(res, "_version", ""), nil
}

// PlayerCount returns the number of players known to the server.
func (s *Server) PlayerCount(ctx context.Context) (int, error) {
	res, err := s.Request(ctx, "", "player", "count", "?")
	if err != nil {
		return 0, err
	}
	return intField(res, "_count", 0), nil
}

// PlayerInfo is one entry of the server's player listing.
type PlayerInfo struct {
	Ref       string
	Name      string
	Model     string
	Addr      string
	Connected bool
}

// Players enumerates the players known to the server.
func (s *Server) Players(ctx context.Context) ([]PlayerInfo, error) {
	count, err := s.PlayerCount(ctx)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, nil
	}

	res, err := s.Request(ctx, "", "players", "0", strconv.Itoa(count))
	if err != nil {
		return nil, err
	}

	loop, ok := res["players_loop"].([]any)
	if !ok {
		return nil, nil
	}

	players := make([]PlayerInfo, 0, len(loop))
	for _, entry := range loop {
		m, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		r := Result(m)
		players = append(players, PlayerInfo{
			Ref:       stringField(r, "playerid", ""),
			Name:      stringField(r, "name", ""),
			Model:     stringField(r, "model", ""),
			Addr:      stringField(r, "ip", ""),
			Connected: boolField(r, "connected"),
		})
	}
	return players, nil
}
