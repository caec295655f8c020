package sandbox

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/opensandbox/sandbox-go/apis"
)

const (
	// WorkspacePath 沙箱内默认的工作目录。
	WorkspacePath = "/workspace"

	committerEmail = "sandbox@opensandbox.ai"
	committerName  = "OpenSandbox"

	credentialsKey = "git-credentials"
)

// Git 版本控制模块。所有操作通过在沙箱内执行 git 命令实现，
// 首次使用前自动注入一次性凭证（.netrc 与提交者身份）。
type Git struct {
	sandbox *Sandbox
}

// GitOption 配置 git 操作的选项。
type GitOption func(*gitOpts)

type gitOpts struct {
	repoName      string
	defaultBranch string
	commitMessage string
	branch        string
	clonePath     string
	maxCount      int
}

func defaultGitOpts() *gitOpts {
	return &gitOpts{
		defaultBranch: "main",
		commitMessage: "update",
		clonePath:     WorkspacePath,
		maxCount:      10,
	}
}

// WithRepoName 设置仓库名，默认使用沙箱标识。
func WithRepoName(name string) GitOption {
	return func(o *gitOpts) { o.repoName = name }
}

// WithDefaultBranch 设置初始化仓库的默认分支，默认 main。
func WithDefaultBranch(branch string) GitOption {
	return func(o *gitOpts) { o.defaultBranch = branch }
}

// WithCommitMessage 设置提交信息，默认 "update"。
func WithCommitMessage(message string) GitOption {
	return func(o *gitOpts) { o.commitMessage = message }
}

// WithBranch 设置操作的目标分支。
func WithBranch(branch string) GitOption {
	return func(o *gitOpts) { o.branch = branch }
}

// WithClonePath 设置克隆的目标目录，默认 /workspace。
func WithClonePath(path string) GitOption {
	return func(o *gitOpts) { o.clonePath = path }
}

// WithMaxCount 设置 Log 返回的最大提交数，默认 10。
func WithMaxCount(n int) GitOption {
	return func(o *gitOpts) { o.maxCount = n }
}

// ensureCredentials 确保沙箱内已注入 git 凭证。多 goroutine 并发
// 调用时只执行一次，注入失败不置位，下次调用重试。
func (g *Git) ensureCredentials(ctx context.Context) error {
	s := g.sandbox
	if s.credsInjected.Load() {
		return nil
	}

	_, err, _ := s.credsGroup.Do(credentialsKey, func() (interface{}, error) {
		if s.credsInjected.Load() {
			return nil, nil
		}
		if s.gitDomain == "" {
			return nil, errors.New("sandbox: git domain is not configured")
		}

		netrc := fmt.Sprintf("machine %s\nlogin %s\npassword x\n",
			gitHost(s.gitDomain), s.client.config.APIKey)
		script := fmt.Sprintf(
			"printf '%%s\\n' %s > ~/.netrc && chmod 600 ~/.netrc"+
				" && git config --global user.email %s"+
				" && git config --global user.name %s"+
				" && git config --global init.defaultBranch main",
			shellQuote(strings.TrimSuffix(netrc, "\n")),
			shellQuote(committerEmail),
			shellQuote(committerName),
		)

		result, err := s.Commands().Run(ctx, script, WithTimeout(10*time.Second))
		if err != nil {
			return nil, err
		}
		if result.ExitCode != 0 {
			return nil, fmt.Errorf("sandbox: git credential setup failed: %s", result.Stderr)
		}
		s.credsInjected.Store(true)
		return nil, nil
	})
	return err
}

// RepoSlug 返回句柄当前关联的仓库 slug。Init 创建或沿用仓库、
// 以及按 slug Clone 之后可用，未关联时返回空串。
func (g *Git) RepoSlug() string {
	g.sandbox.repoMu.Lock()
	defer g.sandbox.repoMu.Unlock()
	return g.sandbox.repoSlug
}

// remoteURL 拼接组织内仓库的 HTTP 远端地址。
func (g *Git) remoteURL(slug string) string {
	return "http://" + g.sandbox.gitDomain + "/" + g.sandbox.orgSlug + "/" + slug + ".git"
}

// Init 在 git 服务上创建仓库并在 /workspace 初始化本地仓库、
// 绑定远端。同名仓库已存在（409）时沿用已有仓库。
func (g *Git) Init(ctx context.Context, options ...GitOption) (*RepoInfo, error) {
	if err := g.ensureCredentials(ctx); err != nil {
		return nil, err
	}
	opts := defaultGitOpts()
	for _, option := range options {
		option(opts)
	}

	name := opts.repoName
	if name == "" {
		name = g.sandbox.sandboxID
	}

	info := &RepoInfo{Name: name, Slug: slugify(name), DefaultBranch: opts.defaultBranch}
	repo, err := g.sandbox.controlAPI.CreateRepository(ctx, apis.CreateRepositoryRequest{
		Name: name,
	})
	if err != nil {
		// 已存在的仓库直接沿用
		if !apis.IsConflict(err) {
			return nil, err
		}
	} else {
		info = &RepoInfo{
			ID:            repo.ID,
			Name:          repo.Name,
			Slug:          repo.Slug,
			Description:   repo.Description,
			DefaultBranch: repo.DefaultBranch,
			CloneURL:      repo.CloneURL,
			CreatedAt:     repo.CreatedAt,
		}
		if info.Slug == "" {
			info.Slug = slugify(name)
		}
		if info.DefaultBranch == "" {
			info.DefaultBranch = opts.defaultBranch
		}
	}

	g.sandbox.repoMu.Lock()
	g.sandbox.repoSlug = info.Slug
	g.sandbox.repoMu.Unlock()

	script := fmt.Sprintf("cd %s && git init -b %s && git remote add origin %s",
		shellQuote(WorkspacePath), shellQuote(info.DefaultBranch), shellQuote(g.remoteURL(info.Slug)))
	result, err := g.sandbox.Commands().Run(ctx, script, WithTimeout(15*time.Second))
	if err != nil {
		return nil, err
	}
	if result.ExitCode != 0 {
		return nil, fmt.Errorf("sandbox: git init failed: %s", result.Stderr)
	}
	return info, nil
}

// Push 暂存全部变更、提交并推送。未指定分支时推送全部分支。
func (g *Git) Push(ctx context.Context, options ...GitOption) (*CommandResult, error) {
	if err := g.ensureCredentials(ctx); err != nil {
		return nil, err
	}
	opts := defaultGitOpts()
	for _, option := range options {
		option(opts)
	}

	push := "git push -u --all"
	if opts.branch != "" {
		push = "git push -u origin " + shellQuote(opts.branch)
	}
	script := fmt.Sprintf("cd %s && git add -A && git commit -m %s --allow-empty && %s",
		shellQuote(WorkspacePath), shellQuote(opts.commitMessage), push)
	return g.sandbox.Commands().Run(ctx, script, WithTimeout(120*time.Second))
}

// Pull 拉取远端变更。
func (g *Git) Pull(ctx context.Context, options ...GitOption) (*CommandResult, error) {
	if err := g.ensureCredentials(ctx); err != nil {
		return nil, err
	}
	opts := defaultGitOpts()
	for _, option := range options {
		option(opts)
	}

	script := "cd " + shellQuote(WorkspacePath) + " && git pull"
	if opts.branch != "" {
		script += " origin " + shellQuote(opts.branch)
	}
	return g.sandbox.Commands().Run(ctx, script, WithTimeout(60*time.Second))
}

// Clone 克隆仓库。repo 为完整 URL 时按原样使用，为仓库 slug 时
// 拼接组织内远端地址并记录为当前仓库。
func (g *Git) Clone(ctx context.Context, repo string, options ...GitOption) (*CommandResult, error) {
	if err := g.ensureCredentials(ctx); err != nil {
		return nil, err
	}
	opts := defaultGitOpts()
	for _, option := range options {
		option(opts)
	}

	url := repo
	if !strings.Contains(repo, "://") && !strings.Contains(repo, "@") {
		url = g.remoteURL(repo)
		g.sandbox.repoMu.Lock()
		g.sandbox.repoSlug = repo
		g.sandbox.repoMu.Unlock()
	}

	script := "git clone"
	if opts.branch != "" {
		script += " -b " + shellQuote(opts.branch)
	}
	script += " " + shellQuote(url) + " " + shellQuote(opts.clonePath)
	return g.sandbox.Commands().Run(ctx, script, WithTimeout(120*time.Second))
}

// Status 查看工作区状态。
func (g *Git) Status(ctx context.Context) (*CommandResult, error) {
	return g.run(ctx, "git status")
}

// Log 查看提交历史，默认最近 10 条。
func (g *Git) Log(ctx context.Context, options ...GitOption) (*CommandResult, error) {
	opts := defaultGitOpts()
	for _, option := range options {
		option(opts)
	}
	return g.run(ctx, fmt.Sprintf("git log --oneline -n %d", opts.maxCount))
}

// Diff 查看未暂存的变更。
func (g *Git) Diff(ctx context.Context) (*CommandResult, error) {
	return g.run(ctx, "git diff")
}

// Branch 创建并切换到新分支。
func (g *Git) Branch(ctx context.Context, name string) (*CommandResult, error) {
	return g.run(ctx, "git checkout -b "+shellQuote(name))
}

// Checkout 切换到已有分支或提交。
func (g *Git) Checkout(ctx context.Context, ref string) (*CommandResult, error) {
	return g.run(ctx, "git checkout "+shellQuote(ref))
}

// run 在 /workspace 下执行只读类 git 命令。命令以非零退出码
// 结束不算错误，结果原样返回。
func (g *Git) run(ctx context.Context, cmd string) (*CommandResult, error) {
	if err := g.ensureCredentials(ctx); err != nil {
		return nil, err
	}
	script := "cd " + shellQuote(WorkspacePath) + " && " + cmd
	return g.sandbox.Commands().Run(ctx, script, WithTimeout(10*time.Second))
}

// slugify 将仓库名归一为 slug（小写，空格替换为连字符）。
func slugify(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "-")
}

// shellQuote 以单引号包裹 shell 参数，内部单引号按 POSIX 规则转义。
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// gitHost 去掉端口，.netrc 的 machine 字段只认主机名。
func gitHost(domain string) string {
	if host, _, err := net.SplitHostPort(domain); err == nil {
		return host
	}
	return domain
}
