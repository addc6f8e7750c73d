package domain

// Event names a state change a session subscriber can react to. Events
// carry no payload beyond the merge outcome: consumers re-query the session
// for fresh state, which keeps the engine the single source of truth.
type Event string

const (
	EventWorkingDirectoryChanged Event = "workingDirectoryChanged"
	EventCommitted               Event = "committed"
	EventBranchSwitched          Event = "branchSwitched"
	EventBranchCreated           Event = "branchCreated"
	EventBranchDeleted           Event = "branchDeleted"
	EventFilesStaged             Event = "filesStaged"
	EventFilesUnstaged           Event = "filesUnstaged"
	EventPushed                  Event = "pushed"
	EventPulled                  Event = "pulled"
	EventFetched                 Event = "fetched"
	EventStashed                 Event = "stashed"
	EventStashApplied            Event = "stashApplied"
	EventMerged                  Event = "merged"
	EventRebased                 Event = "rebased"
)

// Notification is what subscribers receive: the event name plus the merge
// outcome for EventMerged (nil for every other event).
type Notification struct {
	Event Event
	Merge *MergeResult
}
