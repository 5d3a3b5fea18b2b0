// Package helm wraps the Helm v4 SDK with the operations the stack installers
// need: repository registration and chart install/upgrade/uninstall.
package helm

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	helmv4action "helm.sh/helm/v4/pkg/action"
	helmv4loader "helm.sh/helm/v4/pkg/chart/loader"
	chartv2 "helm.sh/helm/v4/pkg/chart/v2"
	helmv4cli "helm.sh/helm/v4/pkg/cli"
	helmv4getter "helm.sh/helm/v4/pkg/getter"
	helmv4kube "helm.sh/helm/v4/pkg/kube"
	v1 "helm.sh/helm/v4/pkg/release/v1"
	repov1 "helm.sh/helm/v4/pkg/repo/v1"
	helmv4strvals "helm.sh/helm/v4/pkg/strvals"
)

const (
	// DefaultTimeout defines the fallback Helm chart installation timeout.
	DefaultTimeout = 5 * time.Minute

	// ContextTimeoutBuffer is the additional time added to the Helm timeout so
	// the Go context does not cancel while Helm's kstatus wait is running.
	ContextTimeoutBuffer = 5 * time.Minute

	repoDirMode   = 0o750
	repoFileMode  = 0o640
	chartRefParts = 2
)

var (
	errReleaseNameRequired     = errors.New("helm: release name is required")
	errRepositoryEntryRequired = errors.New("helm: repository entry is required")
	errRepositoryNameRequired  = errors.New("helm: repository name is required")
	errRepositoryCacheUnset    = errors.New("helm: repository cache path is not set")
	errRepositoryConfigUnset   = errors.New("helm: repository config path is not set")
	errChartSpecRequired       = errors.New("helm: chart spec is required")
)

// stderrCaptureMu protects process-wide stderr redirection from concurrent access.
var stderrCaptureMu sync.Mutex //nolint:gochecknoglobals // global lock required to coordinate stderr interception

// ChartSpec describes a chart installation.
type ChartSpec struct {
	ReleaseName string
	ChartName   string
	Namespace   string
	Version     string

	CreateNamespace bool
	Wait            bool
	WaitForJobs     bool
	Timeout         time.Duration
	Silent          bool
	UpgradeCRDs     bool

	SetValues map[string]string

	RepoURL string
}

// RepositoryEntry describes a Helm repository that should be added locally
// before performing chart operations.
type RepositoryEntry struct {
	Name string
	URL  string
}

// ReleaseInfo captures metadata about a Helm release after an operation.
type ReleaseInfo struct {
	Name       string
	Namespace  string
	Revision   int
	Status     string
	Chart      string
	AppVersion string
	Updated    time.Time
	Notes      string
}

// Interface defines the subset of Helm functionality required by the installers.
type Interface interface {
	InstallOrUpgradeChart(ctx context.Context, spec *ChartSpec) (*ReleaseInfo, error)
	UninstallRelease(ctx context.Context, releaseName, namespace string) error
	AddRepository(ctx context.Context, entry *RepositoryEntry) error
}

// Client is the default Helm implementation backed by the Helm v4 SDK.
type Client struct {
	actionConfig *helmv4action.Configuration
	settings     *helmv4cli.EnvSettings
	debugLog     func(string, ...any)
}

var _ Interface = (*Client)(nil)

// NewClient creates a Helm client using the provided kubeconfig and context.
func NewClient(kubeConfig, kubeContext string) (*Client, error) {
	settings := helmv4cli.New()
	if kubeConfig != "" {
		settings.KubeConfig = kubeConfig
	}

	if kubeContext != "" {
		settings.KubeContext = kubeContext
	}

	actionConfig := new(helmv4action.Configuration)

	initErr := actionConfig.Init(
		settings.RESTClientGetter(),
		settings.Namespace(),
		os.Getenv("HELM_DRIVER"),
	)
	if initErr != nil {
		return nil, fmt.Errorf("failed to initialize helm v4 action config: %w", initErr)
	}

	return &Client{
		actionConfig: actionConfig,
		settings:     settings,
		debugLog:     func(string, ...any) {},
	}, nil
}

// InstallOrUpgradeChart upgrades a Helm chart when present and installs it otherwise.
func (c *Client) InstallOrUpgradeChart(ctx context.Context, spec *ChartSpec) (*ReleaseInfo, error) {
	if spec == nil {
		return nil, errChartSpecRequired
	}

	cleanup, err := c.switchNamespace(spec.Namespace)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	histClient := helmv4action.NewHistory(c.actionConfig)
	histClient.Max = 1

	var rel *v1.Release

	releases, histErr := histClient.Run(spec.ReleaseName)
	if histErr == nil && len(releases) > 0 {
		rel, err = c.upgradeRelease(ctx, spec)
	} else {
		rel, err = c.performInstall(ctx, spec)
	}

	if err != nil {
		return nil, err
	}

	return releaseToInfo(rel), nil
}

// UninstallRelease removes a Helm release by name within the provided namespace.
func (c *Client) UninstallRelease(ctx context.Context, releaseName, namespace string) error {
	if releaseName == "" {
		return errReleaseNameRequired
	}

	ctxErr := ctx.Err()
	if ctxErr != nil {
		return fmt.Errorf("uninstall release context cancelled: %w", ctxErr)
	}

	cleanup, err := c.switchNamespace(namespace)
	if err != nil {
		return err
	}
	defer cleanup()

	client := helmv4action.NewUninstall(c.actionConfig)
	client.KeepHistory = false

	_, uninstallErr := client.Run(releaseName)
	if uninstallErr != nil {
		return fmt.Errorf("uninstall release %q: %w", releaseName, uninstallErr)
	}

	return nil
}

// AddRepository registers a Helm repository for the current client instance.
func (c *Client) AddRepository(ctx context.Context, entry *RepositoryEntry) error {
	requestErr := validateRepositoryRequest(ctx, entry)
	if requestErr != nil {
		return requestErr
	}

	repoFile, err := ensureRepositoryConfig(c.settings)
	if err != nil {
		return err
	}

	repositoryFile := loadOrInitRepositoryFile(repoFile)
	repoEntry := &repov1.Entry{Name: entry.Name, URL: entry.URL}

	repoCache, err := ensureRepositoryCache(c.settings)
	if err != nil {
		return err
	}

	chartRepository, err := repov1.NewChartRepository(repoEntry, helmv4getter.All(c.settings))
	if err != nil {
		return fmt.Errorf("create chart repository: %w", err)
	}

	chartRepository.CachePath = repoCache

	indexPath, err := chartRepository.DownloadIndexFile()
	if err != nil {
		return fmt.Errorf("failed to download repository index file: %w", err)
	}

	_, statErr := os.Stat(indexPath)
	if statErr != nil {
		return fmt.Errorf("failed to verify repository index file: %w", statErr)
	}

	repositoryFile.Update(repoEntry)

	writeErr := repositoryFile.WriteFile(repoFile, repoFileMode)
	if writeErr != nil {
		return fmt.Errorf("write repository file: %w", writeErr)
	}

	return nil
}

// --- internals ---

func validateRepositoryRequest(ctx context.Context, entry *RepositoryEntry) error {
	if entry == nil {
		return errRepositoryEntryRequired
	}

	if entry.Name == "" {
		return errRepositoryNameRequired
	}

	ctxErr := ctx.Err()
	if ctxErr != nil {
		return fmt.Errorf("add repository context cancelled: %w", ctxErr)
	}

	return nil
}

func ensureRepositoryConfig(settings *helmv4cli.EnvSettings) (string, error) {
	repoFile := settings.RepositoryConfig

	envRepoConfig := os.Getenv("HELM_REPOSITORY_CONFIG")
	if envRepoConfig != "" {
		repoFile = envRepoConfig
		settings.RepositoryConfig = envRepoConfig
	}

	if repoFile == "" {
		return "", errRepositoryConfigUnset
	}

	repoDir := filepath.Dir(repoFile)

	mkdirErr := os.MkdirAll(repoDir, repoDirMode)
	if mkdirErr != nil {
		return "", fmt.Errorf("create repository directory: %w", mkdirErr)
	}

	return repoFile, nil
}

func loadOrInitRepositoryFile(repoFile string) *repov1.File {
	repositoryFile, err := repov1.LoadFile(repoFile)
	if err != nil {
		return repov1.NewFile()
	}

	return repositoryFile
}

func ensureRepositoryCache(settings *helmv4cli.EnvSettings) (string, error) {
	repoCache := settings.RepositoryCache

	if envCache := os.Getenv("HELM_REPOSITORY_CACHE"); envCache != "" {
		repoCache = envCache
		settings.RepositoryCache = envCache
	}

	if repoCache == "" {
		return "", errRepositoryCacheUnset
	}

	mkdirCacheErr := os.MkdirAll(repoCache, repoDirMode)
	if mkdirCacheErr != nil {
		return "", fmt.Errorf("create repository cache directory: %w", mkdirCacheErr)
	}

	return repoCache, nil
}

func (c *Client) performInstall(ctx context.Context, spec *ChartSpec) (*v1.Release, error) {
	client := helmv4action.NewInstall(c.actionConfig)
	client.ReleaseName = spec.ReleaseName
	client.Namespace = spec.Namespace
	client.CreateNamespace = spec.CreateNamespace

	if spec.Wait {
		client.WaitStrategy = helmv4kube.StatusWatcherStrategy
	}

	client.WaitForJobs = spec.WaitForJobs

	client.Timeout = spec.Timeout
	if client.Timeout == 0 {
		client.Timeout = DefaultTimeout
	}

	client.Version = spec.Version

	chart, err := c.locateAndLoadChart(spec, client)
	if err != nil {
		return nil, err
	}

	vals, err := mergeValues(spec)
	if err != nil {
		return nil, err
	}

	return c.runRelease(spec, func() (any, error) {
		return client.RunWithContext(ctx, chart, vals)
	})
}

func (c *Client) upgradeRelease(ctx context.Context, spec *ChartSpec) (*v1.Release, error) {
	client := helmv4action.NewUpgrade(c.actionConfig)
	client.Namespace = spec.Namespace

	if spec.Wait {
		client.WaitStrategy = helmv4kube.StatusWatcherStrategy
	}

	client.WaitForJobs = spec.WaitForJobs

	client.Timeout = spec.Timeout
	if client.Timeout == 0 {
		client.Timeout = DefaultTimeout
	}

	client.Version = spec.Version
	client.SkipCRDs = !spec.UpgradeCRDs // Inverted logic in v4

	chart, err := c.locateAndLoadChart(spec, client)
	if err != nil {
		return nil, err
	}

	vals, err := mergeValues(spec)
	if err != nil {
		return nil, err
	}

	return c.runRelease(spec, func() (any, error) {
		return client.RunWithContext(ctx, spec.ReleaseName, chart, vals)
	})
}

func (c *Client) runRelease(spec *ChartSpec, operation func() (any, error)) (*v1.Release, error) {
	var (
		releaser any
		err      error
	)

	if spec.Silent {
		releaser, err = runWithSilencedStderr(operation)
	} else {
		releaser, err = operation()
	}

	if err != nil {
		return nil, err
	}

	if rel, ok := releaser.(*v1.Release); ok {
		return rel, nil
	}

	return nil, fmt.Errorf("unexpected release type: %T", releaser)
}

func (c *Client) locateAndLoadChart(spec *ChartSpec, client any) (*chartv2.Chart, error) {
	chartPath := spec.ChartName

	if spec.RepoURL != "" {
		located, err := c.locateChartFromRepo(spec, client)
		if err != nil {
			return nil, err
		}

		chartPath = located
	}

	chartInterface, err := helmv4loader.Load(chartPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load chart: %w", err)
	}

	chart, ok := chartInterface.(*chartv2.Chart)
	if !ok {
		return nil, fmt.Errorf("unexpected chart type: %T", chartInterface)
	}

	return chart, nil
}

func (c *Client) locateChartFromRepo(spec *ChartSpec, client any) (string, error) {
	_, chartName := parseChartRef(spec.ChartName)
	if chartName == "" {
		chartName = spec.ChartName
	}

	switch cl := client.(type) {
	case *helmv4action.Install:
		cl.ChartPathOptions.RepoURL = spec.RepoURL
	case *helmv4action.Upgrade:
		cl.ChartPathOptions.RepoURL = spec.RepoURL
	}

	chartURL, err := repov1.FindChartInRepoURL(
		spec.RepoURL,
		chartName,
		helmv4getter.All(c.settings),
		repov1.WithChartVersion(spec.Version),
	)
	if err != nil {
		return "", fmt.Errorf(
			"failed to locate chart %q in repository %s: %w",
			chartName,
			spec.RepoURL,
			err,
		)
	}

	return chartURL, nil
}

func mergeValues(spec *ChartSpec) (map[string]any, error) {
	base := map[string]any{}

	for key, val := range spec.SetValues {
		err := helmv4strvals.ParseInto(fmt.Sprintf("%s=%s", key, val), base)
		if err != nil {
			return nil, fmt.Errorf("failed to parse set value %s=%s: %w", key, val, err)
		}
	}

	return base, nil
}

func (c *Client) switchNamespace(namespace string) (func(), error) {
	if namespace == "" {
		return func() {}, nil
	}

	previousNamespace := c.settings.Namespace()
	if previousNamespace == namespace {
		return func() {}, nil
	}

	c.settings.SetNamespace(namespace)

	reinitErr := c.actionConfig.Init(
		c.settings.RESTClientGetter(),
		namespace,
		os.Getenv("HELM_DRIVER"),
	)
	if reinitErr != nil {
		c.settings.SetNamespace(previousNamespace)
		_ = c.actionConfig.Init(
			c.settings.RESTClientGetter(),
			previousNamespace,
			os.Getenv("HELM_DRIVER"),
		)

		return nil, fmt.Errorf("failed to set helm namespace %q: %w", namespace, reinitErr)
	}

	return func() {
		c.settings.SetNamespace(previousNamespace)

		restoreErr := c.actionConfig.Init(
			c.settings.RESTClientGetter(),
			previousNamespace,
			os.Getenv("HELM_DRIVER"),
		)
		if restoreErr != nil {
			c.debugLog("failed to restore helm namespace: %v", restoreErr)
		}
	}, nil
}

func parseChartRef(chartRef string) (string, string) {
	parts := strings.SplitN(chartRef, "/", chartRefParts)
	if len(parts) == 1 {
		return "", parts[0]
	}

	return parts[0], parts[1]
}

func releaseToInfo(rel *v1.Release) *ReleaseInfo {
	if rel == nil {
		return nil
	}

	return &ReleaseInfo{
		Name:       rel.Name,
		Namespace:  rel.Namespace,
		Revision:   rel.Version,
		Status:     rel.Info.Status.String(),
		Chart:      rel.Chart.Metadata.Name,
		AppVersion: rel.Chart.Metadata.AppVersion,
		Updated:    rel.Info.LastDeployed,
		Notes:      rel.Info.Notes,
	}
}

// runWithSilencedStderr redirects process stderr for the duration of the
// operation. Some charts emit harmless warnings during CRD handling that
// confuse users if printed; captured output is appended to any error instead.
func runWithSilencedStderr(operation func() (any, error)) (releaseResult any, runErr error) {
	readPipe, writePipe, pipeErr := os.Pipe()
	if pipeErr != nil {
		return operation()
	}

	stderrCaptureMu.Lock()
	defer stderrCaptureMu.Unlock()

	originalStderr := os.Stderr

	var (
		stderrBuffer bytes.Buffer
		waitGroup    sync.WaitGroup
	)

	waitGroup.Add(1)

	go func() {
		defer waitGroup.Done()

		_, _ = io.Copy(&stderrBuffer, readPipe)
	}()

	os.Stderr = writePipe

	defer func() {
		_ = writePipe.Close()

		waitGroup.Wait()

		_ = readPipe.Close()
		os.Stderr = originalStderr

		if runErr != nil {
			logs := strings.TrimSpace(stderrBuffer.String())
			if logs != "" {
				runErr = fmt.Errorf("%w: %s", runErr, logs)
			}
		}
	}()

	releaseResult, runErr = operation()

	return releaseResult, runErr
}
