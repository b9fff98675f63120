// Package diag implements the staged connection diagnostic: collection
// listing, expected-collection checks, the write/read/delete permission
// probe, and the server version report.
package diag

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"mongocheck/appcontext"
	"mongocheck/storage"
)

// CollectionStatus records the existence check for one expected
// application collection.
type CollectionStatus struct {
	Name   string
	Exists bool
	Count  int64
}

// Report aggregates the outcome of a diagnostic run.
type Report struct {
	DatabaseName  string
	Collections   []string
	Expected      []CollectionStatus
	Missing       []string
	ServerVersion string
	WriteOK       bool
	ReadOK        bool
	DeleteOK      bool
}

// Runner holds the dependencies for a diagnostic run. The stages assume
// an already-established connection; connecting and classifying
// connection failures belong to the caller.
type Runner struct {
	DB       storage.Database
	Printer  *Printer
	Expected []string
	Probe    string
}

// Run executes the post-connection stages in order and prints the
// summary. Permission-probe failures are reported in place and never
// abort the run; any other stage failure does.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	logger := appcontext.LoggerFromContext(ctx)

	report := &Report{DatabaseName: r.DB.Name()}
	r.Printer.OK("Database: %s", report.DatabaseName)

	names, err := r.DB.ListCollectionNames(ctx)
	if err != nil {
		r.Printer.Fail("Failed to list collections: %v", err)
		return nil, err
	}
	report.Collections = names
	r.Printer.OK("Found %d collection(s)", len(names))
	for _, name := range names {
		r.Printer.Line("   - %s", name)
	}

	if err := r.checkExpected(ctx, report); err != nil {
		return nil, err
	}

	r.probePermissions(ctx, report)

	version, err := r.DB.ServerVersion(ctx)
	if err != nil {
		r.Printer.Fail("Failed to fetch server version: %v", err)
		return nil, err
	}
	report.ServerVersion = version
	r.Printer.OK("Server version: %s", version)

	logger.DebugContext(ctx, "Diagnostic stages complete",
		"collections", len(report.Collections),
		"missing", report.Missing,
		"version", report.ServerVersion,
	)

	r.printSummary(report)

	return report, nil
}

// checkExpected reports existence and document count for each expected
// collection, accumulating absent names in the report's missing list.
func (r *Runner) checkExpected(ctx context.Context, report *Report) error {
	existing := make(map[string]bool, len(report.Collections))
	for _, name := range report.Collections {
		existing[name] = true
	}

	for _, name := range r.Expected {
		if !existing[name] {
			r.Printer.Warn("Collection %q is missing", name)
			report.Expected = append(report.Expected, CollectionStatus{Name: name})
			report.Missing = append(report.Missing, name)
			continue
		}

		count, err := r.DB.Collection(name).CountDocuments(ctx, bson.D{})
		if err != nil {
			r.Printer.Fail("Failed to count documents in %q: %v", name, err)
			return fmt.Errorf("count check for collection %s: %w", name, err)
		}
		r.Printer.OK("Collection %q exists (%d document(s))", name, count)
		report.Expected = append(report.Expected, CollectionStatus{Name: name, Exists: true, Count: count})
	}

	return nil
}

// probePermissions runs the insert/find/delete cycle against the probe
// collection. The three sub-checks are independent: each is attempted and
// reported even when an earlier one failed.
func (r *Runner) probePermissions(ctx context.Context, report *Report) {
	coll := r.DB.Collection(r.Probe)

	hostname, _ := os.Hostname()
	pid := os.Getpid()
	doc := bson.M{
		"probe":      true,
		"host":       hostname,
		"pid":        pid,
		"created_at": time.Now().UTC(),
	}
	// Scoped to this run so concurrent probes only delete their own
	// document.
	filter := bson.M{"probe": true, "host": hostname, "pid": pid}

	if _, err := coll.InsertOne(ctx, doc); err != nil {
		r.Printer.Fail("Write permission check failed: %v", err)
	} else {
		report.WriteOK = true
		r.Printer.OK("Write permission verified")
	}

	if err := coll.FindOne(ctx, filter); err != nil {
		r.Printer.Fail("Read permission check failed: %v", err)
	} else {
		report.ReadOK = true
		r.Printer.OK("Read permission verified")
	}

	if _, err := coll.DeleteOne(ctx, filter); err != nil {
		r.Printer.Fail("Delete permission check failed: %v", err)
	} else {
		report.DeleteOK = true
		r.Printer.OK("Delete permission verified")
	}
}

func (r *Runner) printSummary(report *Report) {
	r.Printer.Blank()
	r.Printer.Header("Summary")
	r.Printer.Line("   Database:    %s", report.DatabaseName)
	r.Printer.Line("   Collections: %d", len(report.Collections))
	r.Printer.Line("   Server:      MongoDB %s", report.ServerVersion)
	if len(report.Missing) == 0 {
		r.Printer.Line("   Missing:     none")
	} else {
		r.Printer.Line("   Missing:     %s", strings.Join(report.Missing, ", "))
	}
}
