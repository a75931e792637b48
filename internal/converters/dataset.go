package converters

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/thenoetrevino/tablero/internal/database"
	"github.com/thenoetrevino/tablero/internal/models"
)

// Dataset is a full export: every entity list keyed by its plural name
type Dataset struct {
	Users         []Record `json:"users" yaml:"users"`
	Projects      []Record `json:"projects" yaml:"projects"`
	Tasks         []Record `json:"tasks" yaml:"tasks"`
	Comments      []Record `json:"comments" yaml:"comments"`
	Notifications []Record `json:"notifications" yaml:"notifications"`
}

// Decode reads a dataset in the given format ("json" or "yaml")
func Decode(r io.Reader, format string) (*Dataset, error) {
	var ds Dataset
	switch strings.ToLower(format) {
	case "json":
		dec := json.NewDecoder(r)
		dec.UseNumber()
		if err := dec.Decode(&ds); err != nil {
			return nil, fmt.Errorf("failed to decode json export: %w", err)
		}
	case "yaml", "yml":
		if err := yaml.NewDecoder(r).Decode(&ds); err != nil {
			return nil, fmt.Errorf("failed to decode yaml export: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported export format %q", format)
	}
	return &ds, nil
}

// Summary reports what an import stored and what it skipped
type Summary struct {
	Users         int      `json:"users"`
	Projects      int      `json:"projects"`
	Tasks         int      `json:"tasks"`
	Comments      int      `json:"comments"`
	Notifications int      `json:"notifications"`
	Skipped       []string `json:"skipped,omitempty"`
}

func (s *Summary) skip(format string, args ...any) {
	s.Skipped = append(s.Skipped, fmt.Sprintf(format, args...))
}

// Import stores every record of ds, remapping export IDs to the IDs the
// store assigns. Records that reference missing parents are skipped and
// listed in the summary. A malformed record stops the import; records
// stored before it are kept.
func Import(ctx context.Context, store database.DataStore, ds *Dataset) (Summary, error) {
	var sum Summary
	userIDs := map[int]int{}
	projectIDs := map[int]int{}
	taskIDs := map[int]int{}

	for _, rec := range ds.Users {
		u, err := UserFromRecord(rec)
		if err != nil {
			return sum, err
		}
		created, err := store.Users().Create(ctx, u)
		if err != nil {
			return sum, fmt.Errorf("failed to import user %d: %w", u.ID, err)
		}
		userIDs[u.ID] = created.ID
		sum.Users++
	}

	for _, rec := range ds.Projects {
		p, err := ProjectFromRecord(rec)
		if err != nil {
			return sum, err
		}
		created, err := store.Projects().Create(ctx, p)
		if err != nil {
			return sum, fmt.Errorf("failed to import project %d: %w", p.ID, err)
		}
		projectIDs[p.ID] = created.ID
		sum.Projects++
	}

	tasks := make([]models.Task, 0, len(ds.Tasks))
	for _, rec := range ds.Tasks {
		t, err := TaskFromRecord(rec)
		if err != nil {
			return sum, err
		}
		tasks = append(tasks, t)
	}
	// positions are reassigned on insert; keep the export's column order
	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].Position < tasks[j].Position
	})
	for _, t := range tasks {
		oldID := t.ID
		projectID, ok := projectIDs[t.ProjectID]
		if !ok {
			sum.skip("task %d: unknown project %d", oldID, t.ProjectID)
			continue
		}
		t.ProjectID = projectID
		t.AssigneeID = remap(userIDs, t.AssigneeID)
		t.Position = 0

		created, err := store.Tasks().Create(ctx, t)
		if err != nil {
			return sum, fmt.Errorf("failed to import task %d: %w", oldID, err)
		}
		taskIDs[oldID] = created.ID
		sum.Tasks++
	}

	for _, rec := range ds.Comments {
		c, err := CommentFromRecord(rec)
		if err != nil {
			return sum, err
		}
		taskID, ok := taskIDs[c.TaskID]
		if !ok {
			sum.skip("comment %d: unknown task %d", c.ID, c.TaskID)
			continue
		}
		authorID, ok := userIDs[c.AuthorID]
		if !ok {
			sum.skip("comment %d: unknown author %d", c.ID, c.AuthorID)
			continue
		}
		c.TaskID, c.AuthorID = taskID, authorID
		if _, err := store.Comments().Create(ctx, c); err != nil {
			return sum, fmt.Errorf("failed to import comment %d: %w", c.ID, err)
		}
		sum.Comments++
	}

	for _, rec := range ds.Notifications {
		n, err := NotificationFromRecord(rec)
		if err != nil {
			return sum, err
		}
		recipientID, ok := userIDs[n.RecipientID]
		if !ok {
			sum.skip("notification %d: unknown recipient %d", n.ID, n.RecipientID)
			continue
		}
		n.RecipientID = recipientID
		if _, err := store.Notifications().Create(ctx, n); err != nil {
			return sum, fmt.Errorf("failed to import notification %d: %w", n.ID, err)
		}
		sum.Notifications++
	}

	return sum, nil
}

func remap(ids map[int]int, old *int) *int {
	if old == nil {
		return nil
	}
	if id, ok := ids[*old]; ok {
		return &id
	}
	return nil
}
