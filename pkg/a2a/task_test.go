package a2a

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestTaskString(t *testing.T) {
	Convey("Given a completed task with history and an artifact", t, func() {
		status := NewTextMessage(RoleAgent, "done")
		task := &Task{
			Kind:      KindTask,
			ID:        "task-1",
			ContextID: "ctx-1",
			Status:    TaskStatus{State: TaskStateCompleted, Message: &status},
			History: []Message{
				NewTextMessage(RoleUser, "tell me a joke"),
				NewTextMessage(RoleAgent, "why did the chicken..."),
			},
			Artifacts: []Artifact{{ArtifactID: "a-1", Parts: []Part{NewTextPart("to get to the other side")}}},
		}

		out := task.String()

		Convey("Then it shows the state as final", func() {
			So(out, ShouldContainSubstring, "Task task-1")
			So(out, ShouldContainSubstring, "[completed, final]")
			So(out, ShouldContainSubstring, "ctx-1")
		})

		Convey("Then it shows the latest message and the artifact", func() {
			So(out, ShouldContainSubstring, "Last agent:")
			So(out, ShouldContainSubstring, "why did the chicken...")
			So(out, ShouldContainSubstring, "Artifact a-1:")
			So(out, ShouldContainSubstring, "to get to the other side")
		})
	})

	Convey("Given a task that is still working", t, func() {
		task := &Task{ID: "task-2", Status: TaskStatus{State: TaskStateWorking}}

		Convey("Then it is marked in progress", func() {
			So(task.String(), ShouldContainSubstring, "[working, in progress]")
			So(task.Status.State.Terminal(), ShouldBeFalse)
		})
	})
}
