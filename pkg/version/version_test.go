package version

import (
	"runtime/debug"
	"strings"
	"testing"
)

func TestVersionString(t *testing.T) {
	v := Version{Major: "1", Minor: "2", Patch: "3", Metadata: "rc1", Build: "abcdef"}
	if got := v.String(); got != "Version: 1.2.3-rc1\nBuild: abcdef" {
		t.Errorf("got %q", got)
	}
	if !strings.HasPrefix(TdepVersion.String(), "Version: 0.3.0") {
		t.Errorf("got %q", TdepVersion.String())
	}
}

func TestFormatBuildInfo(t *testing.T) {
	info := &debug.BuildInfo{
		Main: debug.Module{Path: "github.com/go-delve/tdep", Version: "(devel)"},
		Deps: []*debug.Module{
			{Path: "github.com/sirupsen/logrus", Version: "v1.6.0", Sum: "h1:x"},
			{Path: "golang.org/x/sys", Version: "v0.12.0", Replace: &debug.Module{Path: "../sys"}},
		},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "abcdef"},
			{Key: "vcs.modified", Value: "true"},
		},
	}
	want := " mod\tgithub.com/go-delve/tdep\t(devel)\t\n" +
		" os\tlinux/amd64\tnative tracing supported\n" +
		" vcs\tabcdef\t(modified)\n" +
		" dep\tgithub.com/sirupsen/logrus\tv1.6.0\th1:x\n" +
		" dep\tgolang.org/x/sys\tv0.12.0\t\t=> ../sys\t\t\n"
	if got := formatBuildInfo(info, "linux", "amd64"); got != want {
		t.Errorf("got:\n%q\nwant:\n%q", got, want)
	}

	info = &debug.BuildInfo{
		Main: debug.Module{Path: "example.com/tracer", Version: "v1.0.0"},
		Deps: []*debug.Module{{Path: "github.com/go-delve/tdep", Version: "v0.3.0"}},
	}
	got := formatBuildInfo(info, "darwin", "arm64")
	for _, line := range []string{
		" mod\texample.com/tracer\tv1.0.0\t\t(tdep v0.3.0)\n",
		" os\tdarwin/arm64\tnative tracing unsupported\n",
	} {
		if !strings.Contains(got, line) {
			t.Errorf("%q missing from %q", line, got)
		}
	}
	if strings.Contains(got, " vcs") {
		t.Errorf("vcs line without vcs settings: %q", got)
	}
}
