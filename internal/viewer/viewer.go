// Package viewer serves a plan's dependency graph as JSON over localhost
// HTTP so external visualisers can render it.
package viewer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/joshharrison/latepack/internal/planner"
)

// --- Graph types (the visualiser's Graph schema) ---

type GraphNode struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	Status     string  `json:"status"`
	Start      float64 `json:"start"`
	Finish     float64 `json:"finish"`
	Deadline   float64 `json:"deadline"`
	Priority   int     `json:"priority"`
	Overloaded bool    `json:"overloaded"`
}

type GraphEdge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type GraphMetadata struct {
	ID         string  `json:"id"`
	CreatedAt  string  `json:"created_at"`
	Alpha      float64 `json:"alpha"`
	Horizon    float64 `json:"horizon"`
	TotalTasks int     `json:"total_tasks"`
}

type Graph struct {
	Nodes    []GraphNode   `json:"nodes"`
	Edges    []GraphEdge   `json:"edges"`
	Order    []string      `json:"order"`
	Metadata GraphMetadata `json:"metadata"`
}

// toGraph converts an ExecutionPlan into the normalised Graph the UI renders.
func toGraph(plan *planner.ExecutionPlan) *Graph {
	nodes := make([]GraphNode, 0, len(plan.Entries))
	order := make([]string, 0, len(plan.Entries))
	var edges []GraphEdge

	for _, e := range plan.Entries {
		nodes = append(nodes, GraphNode{
			ID:         e.TaskID,
			Title:      e.Title,
			Status:     string(e.Status),
			Start:      e.Start,
			Finish:     e.Finish,
			Deadline:   e.Deadline,
			Priority:   e.Priority,
			Overloaded: e.Overloaded,
		})
		order = append(order, e.TaskID)
		for _, dep := range e.DependsOn {
			edges = append(edges, GraphEdge{From: dep, To: e.TaskID})
		}
	}

	return &Graph{
		Nodes: nodes,
		Edges: edges,
		Order: order,
		Metadata: GraphMetadata{
			ID:         plan.ID,
			CreatedAt:  plan.CreatedAt.Format(time.RFC3339),
			Alpha:      plan.Alpha,
			Horizon:    plan.Horizon,
			TotalTasks: plan.TotalTasks,
		},
	}
}

// --- HTTP server ---

type server struct {
	mu    sync.RWMutex
	graph *Graph
}

func (s *server) handlePostGraph(w http.ResponseWriter, r *http.Request) {
	var plan planner.ExecutionPlan
	if err := json.NewDecoder(r.Body).Decode(&plan); err != nil {
		http.Error(w, "invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	g := toGraph(&plan)

	s.mu.Lock()
	s.graph = g
	s.mu.Unlock()

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(g)
}

func (s *server) handleGetGraph(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	g := s.graph
	s.mu.RUnlock()

	if g == nil {
		http.Error(w, "no plan loaded", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(g)
}

// Start launches the viewer HTTP server on the given port in the background
// and returns the base URL (e.g. "http://localhost:7171").
func Start(port int) (string, error) {
	srv := &server{}
	mux := http.NewServeMux()

	mux.HandleFunc("/graph", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			srv.handlePostGraph(w, r)
		case http.MethodGet:
			srv.handleGetGraph(w, r)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	})

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		fmt.Fprintln(w, "latepack viewer — GET /graph for the current plan, POST /graph to replace it")
	})

	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return "", fmt.Errorf("listen on port %d: %w", port, err)
	}

	go http.Serve(ln, mux)

	addr := fmt.Sprintf("http://localhost:%d", port)
	return addr, nil
}

// PostPlan sends an ExecutionPlan to a running viewer server.
func PostPlan(addr string, plan *planner.ExecutionPlan) error {
	data, err := json.Marshal(plan)
	if err != nil {
		return fmt.Errorf("marshal plan: %w", err)
	}

	resp, err := http.Post(addr+"/graph", "application/json", bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("POST /graph: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("POST /graph returned %d", resp.StatusCode)
	}

	return nil
}

// IsPortOpen checks if something is listening on the given address.
func IsPortOpen(addr string) bool {
	conn, err := net.DialTimeout("tcp", addr, 500*time.Millisecond)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}
