package app

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// 构建时通过 -ldflags "-X 'github.com/lk2023060901/xdooria-progression/pkg/app.Version=v1.0.0'" 注入
// 未注入时回退到 go build 写入的 vcs 信息
var (
	Version   = "dev"
	GitCommit = ""
	BuildDate = ""
	AppName   = "progressionctl"
)

// Info 版本信息
type Info struct {
	AppName   string `json:"app_name" yaml:"app_name"`
	Version   string `json:"version" yaml:"version"`
	GitCommit string `json:"git_commit" yaml:"git_commit"`
	BuildDate string `json:"build_date" yaml:"build_date"`
	Modified  bool   `json:"modified,omitempty" yaml:"modified,omitempty"`
	GoVersion string `json:"go_version" yaml:"go_version"`
	Platform  string `json:"platform" yaml:"platform"`
}

// GetInfo 获取当前应用信息
func GetInfo() Info {
	info := Info{
		AppName:   AppName,
		Version:   Version,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		info.fillFromBuild(bi)
	}
	return info
}

func (i *Info) fillFromBuild(bi *debug.BuildInfo) {
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if i.GitCommit == "" {
				i.GitCommit = s.Value
			}
		case "vcs.time":
			if i.BuildDate == "" {
				i.BuildDate = s.Value
			}
		case "vcs.modified":
			i.Modified = s.Value == "true"
		}
	}
	if i.Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		i.Version = bi.Main.Version
	}
}

func (i Info) String() string {
	commit := i.GitCommit
	if commit == "" {
		commit = "unknown"
	} else if len(commit) > 12 {
		commit = commit[:12]
	}
	if i.Modified {
		commit += "-dirty"
	}
	date := i.BuildDate
	if date == "" {
		date = "unknown"
	}
	return fmt.Sprintf("%s %s (commit: %s, build: %s, %s %s)",
		i.AppName, i.Version, commit, date, i.GoVersion, i.Platform)
}
