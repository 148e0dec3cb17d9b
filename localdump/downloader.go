// Package localdump mirrors the pages of a Coda doc into a tree of Markdown files, and keeps that
// tree up to date on later runs.
package localdump

import (
	"context"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-multierror"
	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
	"golang.org/x/exp/maps"
	"golang.org/x/sync/errgroup"

	"github.com/toothbrush/coda-tools/coda"
)

const (
	maxRetries    = 3
	pageListLimit = 100
)

type DocDumper struct {
	StorePath      string
	Workers        int
	API            *coda.API
	Format         string
	AlwaysDownload bool
	WriteMarkdown  bool
	Prune          bool
	KeepGoing      bool

	// NewBackOff gives the polling schedule for each export; defaults to NewExportBackOff(2m).
	NewBackOff func() backoff.BackOff

	Logger   hclog.Logger
	Progress io.Writer

	doc *coda.Doc

	localMarkdownCache map[PageID]LocalMarkdown

	remotePageMetadata map[PageID]RemotePageMetadata
	remoteMetadataMu   sync.Mutex

	freshLocalFiles map[RelativePath]bool

	failuresMu sync.Mutex
	failures   *multierror.Error
}

// DumpSummary counts what happened to each page of the doc.
type DumpSummary struct {
	Pages   int
	Fetched int
	Cached  int
	Skipped int
	Failed  int
}

type JobType int8

const (
	PagesList JobType = iota
	PageExport
)

type Job struct {
	JobType JobType
	retries int

	// If PagesList:
	ListPagesQuery coda.ListPagesQuery

	// Or, if PageExport:
	PageID PageID
}

type DownloadAction int

const (
	SuccessfulDownload DownloadAction = iota
	SkippedCached
	SkippedUnexportable
	FailedDownload
)

type JobResult struct {
	JobType JobType

	// These fields are for listing-pages jobs:
	finished    bool
	itemsFound  int
	followUpJob *Job

	// These fields are for page-export jobs:
	pageDownloadOutcome DownloadAction
	page                *LocalMarkdown
}

func (dumper *DocDumper) outputFormat() string {
	if dumper.Format == "" {
		return coda.FormatHTML
	}
	return dumper.Format
}

func (dumper *DocDumper) newBackOff() backoff.BackOff {
	if dumper.NewBackOff != nil {
		return dumper.NewBackOff()
	}
	return NewExportBackOff(2 * time.Minute)
}

// DumpDoc exports every canvas page of a doc into StorePath.  Pages whose local copy is still
// current are left alone, unless AlwaysDownload is set.
func (dumper *DocDumper) DumpDoc(ctx context.Context, docID string) (*DumpSummary, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if dumper.Logger == nil {
		dumper.Logger = hclog.NewNullLogger()
	}
	if dumper.Workers < 1 {
		dumper.Workers = 1
	}

	doc, err := dumper.API.GetDoc(ctx, docID)
	if err != nil {
		return nil, fmt.Errorf("localdump: couldn't get doc: %w", err)
	}
	dumper.doc = doc
	dumper.remotePageMetadata = make(map[PageID]RemotePageMetadata)
	dumper.freshLocalFiles = make(map[RelativePath]bool)
	dumper.failures = nil

	dumper.Logger.Info("loading local Markdown files, if any")
	dumper.localMarkdownCache, err = LoadLocalMarkdown(dumper.StorePath, doc.ID, dumper.Logger)
	if err != nil {
		return nil, fmt.Errorf("localdump: failed to load local Markdown: %w", err)
	}
	dumper.Logger.Info("loaded local Markdown", "files", len(dumper.localMarkdownCache))

	dumper.Logger.Info("listing pages", "doc", doc.Name)
	listJob := Job{
		JobType:        PagesList,
		ListPagesQuery: coda.ListPagesQuery{Limit: pageListLimit},
	}
	if _, err := dumper.channelSoupRun(ctx, []Job{listJob}, dumper.Workers*100, "pages"); err != nil {
		return nil, fmt.Errorf("localdump: failed to list pages: %w", err)
	}
	dumper.Logger.Info("listed pages", "count", len(dumper.remotePageMetadata))

	if err := dumper.BuildCacheFromPagelist(); err != nil {
		return nil, fmt.Errorf("localdump: failed to resolve all ancestry: %w", err)
	}

	exportJobs := dumper.generatePageExportJobs()
	summary, err := dumper.channelSoupRun(ctx, exportJobs, len(exportJobs), "export")
	if err != nil {
		return nil, fmt.Errorf("localdump: failed to export pages: %w", err)
	}
	summary.Pages = len(dumper.remotePageMetadata)

	if err := dumper.failures.ErrorOrNil(); err != nil {
		// a partial run knows too little to decide what's stale
		return summary, fmt.Errorf("localdump: %d page(s) failed: %w", summary.Failed, err)
	}

	if dumper.WriteMarkdown && dumper.Prune {
		if err := dumper.pruneDoc(); err != nil {
			return summary, fmt.Errorf("localdump: failed to prune: %w", err)
		}
		dumper.Logger.Info("done pruning")
	}

	return summary, nil
}

func (dumper *DocDumper) generatePageExportJobs() []Job {
	jobs := []Job{}
	for _, id := range maps.Keys(dumper.remotePageMetadata) {
		jobs = append(jobs, Job{
			JobType: PageExport,
			PageID:  id,
		})
	}
	return jobs
}

func (dumper *DocDumper) performJob(ctx context.Context, job Job) (JobResult, error) {
	switch job.JobType {
	case PagesList:
		listResult, err := dumper.performPageListJob(ctx, job)
		if err != nil {
			return JobResult{}, fmt.Errorf("localdump: listing failed: %w", err)
		}
		return listResult, nil

	case PageExport:
		pageResult, err := dumper.performPageExportJob(ctx, job)
		if err != nil {
			return JobResult{}, fmt.Errorf("localdump: export of %s failed: %w", job.PageID, err)
		}
		if pageResult.page != nil {
			dumper.remoteMetadataMu.Lock()
			dumper.freshLocalFiles[pageResult.page.RelativePath] = true
			dumper.remoteMetadataMu.Unlock()
		}
		return pageResult, nil

	default:
		return JobResult{}, fmt.Errorf("localdump: unreachable case jobType = %d", job.JobType)
	}
}

// recordFailure keeps a failed job's error for the end of the run.  It reports false if the run
// should stop instead.
func (dumper *DocDumper) recordFailure(err error) bool {
	if !dumper.KeepGoing {
		return false
	}
	dumper.failuresMu.Lock()
	defer dumper.failuresMu.Unlock()
	dumper.failures = multierror.Append(dumper.failures, err)
	return true
}

func (dumper *DocDumper) channelSoupRun(ctx context.Context, jobs []Job, chanBufferSize int, phaseName string) (*DumpSummary, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	summary := &DumpSummary{}
	if len(jobs) == 0 {
		return summary, nil
	}

	jobQueue := make(chan Job, chanBufferSize)

	unitsOfWorkRemaining := int32(len(jobs))
	unitsOfWorkTotal := len(jobs)
	for _, j := range jobs {
		select {
		case jobQueue <- j:
		case <-ctx.Done():
			return nil, context.Cause(ctx)
		}
	}

	results := make(chan JobResult, dumper.Workers*3)

	grp, gctx := errgroup.WithContext(ctx)

	workers := int32(dumper.Workers)
	for i := 0; i < dumper.Workers; i++ {
		grp.Go(func() error {
			for {
				select {
				case job, ok := <-jobQueue:
					if !ok {
						// Last one out closes the shop
						if atomic.AddInt32(&workers, -1) == 0 {
							close(results)
						}
						return nil
					}
					result, err := dumper.performJob(gctx, job)
					if err != nil {
						if gctx.Err() != nil {
							return context.Cause(gctx)
						}
						if job.retries < maxRetries {
							job.retries++
							dumper.Logger.Warn("job failed, will retry", "attempt", job.retries, "error", err)
							result = JobResult{
								JobType:     job.JobType,
								followUpJob: &job,
							}
						} else if job.JobType == PageExport && dumper.recordFailure(err) {
							dumper.Logger.Error("giving up on page", "page", job.PageID, "error", err)
							result = JobResult{
								JobType:             job.JobType,
								finished:            true,
								pageDownloadOutcome: FailedDownload,
							}
						} else {
							return fmt.Errorf("localdump: retries exceeded: %w", err)
						}
					}
					if result.followUpJob != nil {
						select {
						case jobQueue <- *result.followUpJob:
						case <-gctx.Done():
							return context.Cause(gctx)
						}
					} else {
						// the job didn't return a new job to run
						if atomic.AddInt32(&unitsOfWorkRemaining, -1) == 0 {
							close(jobQueue)
						}
					}

					select {
					case results <- result:
					case <-gctx.Done():
						return context.Cause(gctx)
					}

				case <-gctx.Done():
					return context.Cause(gctx)
				}
			}
		})
	}

	progress := dumper.Progress
	if progress == nil {
		progress = io.Discard
	}
	p := mpb.New(mpb.WithWidth(64), mpb.WithOutput(progress))

	bar := p.AddBar(int64(unitsOfWorkTotal),
		mpb.PrependDecorators(
			decor.Name(fmt.Sprintf("%s:", phaseName),
				decor.WC{C: decor.DindentRight | decor.DextraSpace}),
		),
		mpb.AppendDecorators(
			decor.CountersNoUnit("(%d/%d) "),
			decor.NewPercentage("%d"),
			decor.Spinner([]string{" /", " -", " \\", " |"}),
		),
	)

	grp.Go(func() error {
		for {
			select {
			case result, ok := <-results:
				if !ok {
					return nil
				}
				if result.finished {
					bar.Increment()
					dumper.tally(summary, result)
				}

			case <-gctx.Done():
				return context.Cause(gctx)
			}
		}
	})

	if err := grp.Wait(); err != nil {
		bar.Abort(false)
		p.Wait()
		return nil, fmt.Errorf("localdump: failure: %w", err)
	}

	// retried jobs can leave the bar short of its total
	bar.SetTotal(-1, true)
	p.Wait()

	return summary, nil
}

func (dumper *DocDumper) tally(summary *DumpSummary, result JobResult) {
	if result.JobType != PageExport {
		return
	}

	switch result.pageDownloadOutcome {
	case SuccessfulDownload:
		summary.Fetched++
		dumper.Logger.Debug("fetched", "path", result.page.RelativePath)
	case SkippedCached:
		summary.Cached++
		dumper.Logger.Debug("cached", "path", result.page.RelativePath)
	case SkippedUnexportable:
		summary.Skipped++
	case FailedDownload:
		summary.Failed++
	}
}

func (dumper *DocDumper) performPageListJob(ctx context.Context, job Job) (JobResult, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	apiResult, err := dumper.API.ListPages(ctx, dumper.doc.ID, job.ListPagesQuery)
	if err != nil {
		return JobResult{}, fmt.Errorf("localdump: failed getting partial page list: %w", err)
	}

	dumper.remoteMetadataMu.Lock()
	defer dumper.remoteMetadataMu.Unlock()

	for _, p := range apiResult.Items {
		if _, ok := dumper.remotePageMetadata[PageID(p.ID)]; ok {
			return JobResult{}, fmt.Errorf("localdump: received duplicate ID %s from API", p.ID)
		}
		dumper.remotePageMetadata[PageID(p.ID)] = RemotePageMetadata{
			Page: p,
		}
	}

	result := JobResult{
		JobType:    job.JobType,
		finished:   apiResult.NextPageToken == "",
		itemsFound: len(apiResult.Items),
	}

	if apiResult.NextPageToken == "" {
		return result, nil
	}

	job.ListPagesQuery.PageToken = apiResult.NextPageToken
	job.retries = 0
	result.followUpJob = &job
	return result, nil
}

func (dumper *DocDumper) performPageExportJob(ctx context.Context, job Job) (JobResult, error) {
	dumper.remoteMetadataMu.Lock()
	remote := dumper.remotePageMetadata[job.PageID]
	dumper.remoteMetadataMu.Unlock()

	// embeds and sync pages have no canvas of their own to export
	if remote.Page.ContentType != coda.ContentTypeCanvas {
		return JobResult{
			JobType:             job.JobType,
			finished:            true,
			itemsFound:          1,
			pageDownloadOutcome: SkippedUnexportable,
		}, nil
	}

	ourItem, ok, err := dumper.LocalVersionIsRecent(job.PageID)
	if err != nil {
		return JobResult{}, fmt.Errorf("localdump: failed comparing cached versions: %w", err)
	}
	if ok && !dumper.AlwaysDownload {
		return JobResult{
			JobType:    job.JobType,
			finished:   true,
			itemsFound: 1,

			page:                &ourItem,
			pageDownloadOutcome: SkippedCached,
		}, nil
	}

	exported, err := ExportPage(ctx, dumper.API, dumper.doc.ID, remote.Page.ID, dumper.outputFormat(), dumper.newBackOff())
	if err != nil {
		return JobResult{}, err
	}

	markdown, err := dumper.ConvertToMarkdown(remote.Page, exported.Content)
	if err != nil {
		return JobResult{}, fmt.Errorf("localdump: convert to Markdown failed: %w", err)
	}

	if err = dumper.WriteMarkdownIntoLocal(markdown); err != nil {
		return JobResult{}, fmt.Errorf("localdump: failed writing file: %w", err)
	}

	return JobResult{
		JobType:    job.JobType,
		finished:   true,
		itemsFound: 1,

		page:                &markdown,
		pageDownloadOutcome: SuccessfulDownload,
	}, nil
}
