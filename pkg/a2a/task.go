package a2a

import (
	"fmt"
	"strings"
)

type Task struct {
	Kind      string         `json:"kind"`
	ID        string         `json:"id"`
	ContextID string         `json:"contextId"`
	Status    TaskStatus     `json:"status"`
	History   []Message      `json:"history,omitempty"`
	Artifacts []Artifact     `json:"artifacts,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

/*
Text prefers the artifacts, which hold the task output, and falls back to
the status message.
*/
func (task *Task) Text() string {
	texts := make([]string, 0, len(task.Artifacts))

	for _, artifact := range task.Artifacts {
		if text := artifact.Text(); text != "" {
			texts = append(texts, text)
		}
	}

	if len(texts) > 0 {
		return strings.Join(texts, "\n")
	}

	if task.Status.Message != nil {
		return task.Status.Message.Text()
	}

	return ""
}

func (task *Task) LastMessage() *Message {
	if len(task.History) == 0 {
		return nil
	}

	return &task.History[len(task.History)-1]
}

// TaskIDParams identifies a task for tasks/cancel.
type TaskIDParams struct {
	ID       string         `json:"id"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// TaskQueryParams identifies a task for tasks/get.
type TaskQueryParams struct {
	TaskIDParams
	HistoryLength *int `json:"historyLength,omitempty"`
}

/*
String renders the task as a short status block: the state, whether it is
final, and the text the agent produced so far.
*/
func (task *Task) String() string {
	style := DefaultStyle
	lines := []string{}

	line := func(label, value string) {
		lines = append(lines, "│ "+style.Label.Render(label+":")+" "+style.Value.Render(value))
	}

	progress := "in progress"
	if task.Status.State.Terminal() {
		progress = "final"
	}

	lines = append(lines, style.Role.Render("Task "+task.ID)+" "+style.Muted.Render(
		fmt.Sprintf("[%s, %s]", task.Status.State, progress),
	))

	if task.ContextID != "" {
		line("Context", task.ContextID)
	}

	if task.Status.Message != nil {
		line("Status", task.Status.Message.Text())
	}

	if last := task.LastMessage(); last != nil {
		line("Last "+last.Role, last.Text())
	}

	for _, artifact := range task.Artifacts {
		name := artifact.Name
		if name == "" {
			name = artifact.ArtifactID
		}

		line("Artifact "+name, artifact.Text())
	}

	return strings.Join(lines, "\n")
}
