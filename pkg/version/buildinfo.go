package version

import (
	"bytes"
	"fmt"
	"runtime"
	"runtime/debug"
)

// tdepModule is the path of the main module when tdep is built from its
// own repository. Other main modules vendor the tdep packages.
const tdepModule = "github.com/go-delve/tdep"

func init() {
	buildInfo = moduleBuildInfo
}

// moduleBuildInfo describes the main module, the platform, the VCS state
// and the dependencies of the binary, one per line.
func moduleBuildInfo() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "not built in module mode"
	}
	return formatBuildInfo(info, runtime.GOOS, runtime.GOARCH)
}

func formatBuildInfo(info *debug.BuildInfo, goos, goarch string) string {
	buf := new(bytes.Buffer)
	fmt.Fprintf(buf, " mod\t%s\t%s\t%s", info.Main.Path, info.Main.Version, info.Main.Sum)
	if info.Main.Path != tdepModule {
		fmt.Fprintf(buf, "\t(tdep %s)", dependencyVersion(info, tdepModule))
	}
	fmt.Fprintf(buf, "\n")

	tracing := "unsupported"
	if goos == "linux" && goarch == "amd64" {
		tracing = "supported"
	}
	fmt.Fprintf(buf, " os\t%s/%s\tnative tracing %s\n", goos, goarch, tracing)

	var revision, modified string
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			revision = setting.Value
		case "vcs.modified":
			modified = setting.Value
		}
	}
	if revision != "" {
		fmt.Fprintf(buf, " vcs\t%s", revision)
		if modified == "true" {
			fmt.Fprintf(buf, "\t(modified)")
		}
		fmt.Fprintf(buf, "\n")
	}

	for _, dep := range info.Deps {
		fmt.Fprintf(buf, " dep\t%s\t%s\t%s", dep.Path, dep.Version, dep.Sum)
		if dep.Replace != nil {
			fmt.Fprintf(buf, "\t=> %s\t%s\t%s", dep.Replace.Path, dep.Replace.Version, dep.Replace.Sum)
		}
		fmt.Fprintf(buf, "\n")
	}
	return buf.String()
}

func dependencyVersion(info *debug.BuildInfo, path string) string {
	for _, dep := range info.Deps {
		if dep.Path == path {
			return dep.Version
		}
	}
	return "unknown"
}
