package foundry

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
)

type staticToken string

func (token staticToken) GetToken(context.Context, policy.TokenRequestOptions) (azcore.AccessToken, error) {
	return azcore.AccessToken{Token: string(token), ExpiresOn: time.Now().Add(time.Hour)}, nil
}

type fakeMessage struct {
	ID   string
	Role string
	Text string
}

/*
fakeService is an in-memory stand-in for the agent service. Runs ask for
one call of toolName and complete once outputs are submitted, or ask again
while extraRounds lasts. noToolCalls makes them ask with an empty list.
*/
type fakeService struct {
	mu sync.Mutex

	apiVersion string
	token      string
	toolName    string
	toolArgs    string
	extraRounds int
	noToolCalls bool

	seq          int
	agents       map[string]map[string]any
	uploadedName string
	purpose      string
	messages     map[string][]fakeMessage
	runs         map[string]string
	toolOutputs  []map[string]any
	deleted      []string
	requests     int
}

func newFakeService(t *testing.T) (*fakeService, *httptest.Server) {
	fake := &fakeService{
		apiVersion: "2025-05-15-preview",
		token:      "tok",
		toolName:   "lookup",
		toolArgs:   `{"message":"Contoso"}`,
		agents:     map[string]map[string]any{},
		messages:   map[string][]fakeMessage{},
		runs:       map[string]string{},
	}

	mux := http.NewServeMux()

	mux.HandleFunc("POST /assistants", fake.createAgent)
	mux.HandleFunc("DELETE /assistants/{id}", fake.remove("assistant"))
	mux.HandleFunc("POST /files", fake.uploadFile)
	mux.HandleFunc("GET /files/{id}", func(w http.ResponseWriter, r *http.Request) {
		reply(w, map[string]any{"id": r.PathValue("id"), "object": "file", "status": "processed"})
	})
	mux.HandleFunc("DELETE /files/{id}", fake.remove("file"))
	mux.HandleFunc("POST /vector_stores", func(w http.ResponseWriter, r *http.Request) {
		reply(w, map[string]any{"id": "vs_1", "object": "vector_store", "status": "in_progress"})
	})
	mux.HandleFunc("GET /vector_stores/{id}", func(w http.ResponseWriter, r *http.Request) {
		reply(w, map[string]any{"id": r.PathValue("id"), "object": "vector_store", "status": "completed"})
	})
	mux.HandleFunc("DELETE /vector_stores/{id}", fake.remove("vector_store"))
	mux.HandleFunc("POST /threads", func(w http.ResponseWriter, r *http.Request) {
		reply(w, map[string]any{"id": fake.nextID("thread"), "object": "thread"})
	})
	mux.HandleFunc("DELETE /threads/{id}", fake.remove("thread"))
	mux.HandleFunc("POST /threads/{thread}/messages", fake.createMessage)
	mux.HandleFunc("GET /threads/{thread}/messages", fake.listMessages)
	mux.HandleFunc("POST /threads/{thread}/runs", fake.createRun)
	mux.HandleFunc("GET /threads/{thread}/runs/{run}", fake.getRun)
	mux.HandleFunc("POST /threads/{thread}/runs/{run}/submit_tool_outputs", fake.submitToolOutputs)
	mux.HandleFunc("POST /threads/{thread}/runs/{run}/cancel", fake.cancelRun)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fake.mu.Lock()
		fake.requests++
		fake.mu.Unlock()

		if r.Header.Get("Authorization") != "Bearer "+fake.token ||
			r.URL.Query().Get("api-version") != fake.apiVersion {
			w.WriteHeader(http.StatusUnauthorized)
			reply(w, map[string]any{"error": map[string]any{"message": "denied"}})
			return
		}

		mux.ServeHTTP(w, r)
	}))

	t.Cleanup(srv.Close)
	return fake, srv
}

func (fake *fakeService) requestCount() int {
	fake.mu.Lock()
	defer fake.mu.Unlock()

	return fake.requests
}

func reply(w http.ResponseWriter, body any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(body)
}

func (fake *fakeService) nextID(prefix string) string {
	fake.mu.Lock()
	defer fake.mu.Unlock()

	fake.seq++
	return fmt.Sprintf("%s_%d", prefix, fake.seq)
}

func (fake *fakeService) remove(object string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fake.mu.Lock()
		fake.deleted = append(fake.deleted, r.PathValue("id"))
		fake.mu.Unlock()

		reply(w, map[string]any{"id": r.PathValue("id"), "object": object + ".deleted", "deleted": true})
	}
}

func (fake *fakeService) createAgent(w http.ResponseWriter, r *http.Request) {
	body := map[string]any{}
	_ = json.NewDecoder(r.Body).Decode(&body)

	id := fake.nextID("asst")

	fake.mu.Lock()
	fake.agents[id] = body
	fake.mu.Unlock()

	reply(w, map[string]any{"id": id, "object": "assistant", "model": body["model"], "name": body["name"]})
}

func (fake *fakeService) uploadFile(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(1 << 20); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	_, header, err := r.FormFile("file")

	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	fake.mu.Lock()
	fake.uploadedName = header.Filename
	fake.purpose = r.FormValue("purpose")
	fake.mu.Unlock()

	reply(w, map[string]any{"id": "file_1", "object": "file", "status": "uploaded", "filename": header.Filename})
}

func (fake *fakeService) createMessage(w http.ResponseWriter, r *http.Request) {
	body := struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	}{}
	_ = json.NewDecoder(r.Body).Decode(&body)

	message := fakeMessage{ID: fake.nextID("msg"), Role: body.Role, Text: body.Content}

	fake.mu.Lock()
	fake.messages[r.PathValue("thread")] = append(fake.messages[r.PathValue("thread")], message)
	fake.mu.Unlock()

	reply(w, messageJSON(message))
}

func messageJSON(message fakeMessage) map[string]any {
	return map[string]any{
		"id":     message.ID,
		"object": "thread.message",
		"role":   message.Role,
		"content": []any{
			map[string]any{"type": "text", "text": map[string]any{"value": message.Text, "annotations": []any{}}},
		},
	}
}

func (fake *fakeService) listMessages(w http.ResponseWriter, r *http.Request) {
	fake.mu.Lock()
	messages := append([]fakeMessage{}, fake.messages[r.PathValue("thread")]...)
	fake.mu.Unlock()

	if r.URL.Query().Get("order") == "desc" {
		for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
			messages[i], messages[j] = messages[j], messages[i]
		}
	}

	data := make([]any, 0, len(messages))

	for _, message := range messages {
		data = append(data, messageJSON(message))
	}

	reply(w, map[string]any{"object": "list", "data": data, "has_more": false})
}

func (fake *fakeService) runJSON(id, status string) map[string]any {
	run := map[string]any{"id": id, "object": "thread.run", "status": status}

	if status == "requires_action" {
		run["required_action"] = map[string]any{
			"type": "submit_tool_outputs",
			"submit_tool_outputs": map[string]any{
				"tool_calls": fake.toolCalls(),
			},
		}
	}

	if status == "failed" {
		run["last_error"] = map[string]any{"code": "server_error", "message": "boom"}
	}

	return run
}

func (fake *fakeService) toolCalls() []any {
	if fake.noToolCalls {
		return []any{}
	}

	return []any{
		map[string]any{
			"id":       "call_1",
			"type":     "function",
			"function": map[string]any{"name": fake.toolName, "arguments": fake.toolArgs},
		},
	}
}

func (fake *fakeService) setRun(id, status string) {
	fake.mu.Lock()
	defer fake.mu.Unlock()

	fake.runs[id] = status
}

func (fake *fakeService) createRun(w http.ResponseWriter, r *http.Request) {
	id := fake.nextID("run")
	fake.setRun(id, "requires_action")
	reply(w, fake.runJSON(id, "requires_action"))
}

func (fake *fakeService) getRun(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("run")

	fake.mu.Lock()
	status := fake.runs[id]

	// Runs move one step forward on every poll.
	switch status {
	case "queued":
		fake.runs[id] = "completed"

		if fake.extraRounds > 0 {
			fake.extraRounds--
			fake.runs[id] = "requires_action"
		}
	case "cancelling":
		fake.runs[id] = "cancelled"
	}

	status = fake.runs[id]
	fake.mu.Unlock()

	reply(w, fake.runJSON(id, status))
}

func (fake *fakeService) submitToolOutputs(w http.ResponseWriter, r *http.Request) {
	body := struct {
		ToolOutputs []map[string]any `json:"tool_outputs"`
	}{}
	_ = json.NewDecoder(r.Body).Decode(&body)

	fake.mu.Lock()
	fake.toolOutputs = append(fake.toolOutputs, body.ToolOutputs...)

	thread := r.PathValue("thread")
	for _, output := range body.ToolOutputs {
		fake.messages[thread] = append(fake.messages[thread], fakeMessage{
			ID:   fmt.Sprintf("msg_out_%d", len(fake.messages[thread])),
			Role: "assistant",
			Text: fmt.Sprint(output["output"]),
		})
	}
	fake.mu.Unlock()

	fake.setRun(r.PathValue("run"), "queued")
	reply(w, fake.runJSON(r.PathValue("run"), "queued"))
}

func (fake *fakeService) cancelRun(w http.ResponseWriter, r *http.Request) {
	fake.setRun(r.PathValue("run"), "cancelling")
	reply(w, fake.runJSON(r.PathValue("run"), "cancelling"))
}
