/*
 Copyright 2023 NanaFS Authors.

 Licensed under the Apache License, Version 2.0 (the "License");
 you may not use this file except in compliance with the License.
 You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

 Unless required by applicable law or agreed to in writing, software
 distributed under the License is distributed on an "AS IS" BASIS,
 WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 See the License for the specific language governing permissions and
 limitations under the License.
*/

package config

import (
	"fmt"
	"runtime/debug"
	"strconv"
	"strings"
)

// Set by -ldflags "-X github.com/basenana/hanfts/config.gitTag=..." at build time.
var (
	gitTag    string
	gitCommit string
)

type Version struct {
	Major   int    `json:"major"`
	Minor   int    `json:"minor"`
	Patch   int    `json:"patch"`
	Release string `json:"release"`
	Git     string `json:"git"`
}

func (v Version) Version() string {
	releaseInfo := ""
	if v.Release != "" {
		releaseInfo = "-" + v.Release
	}
	return fmt.Sprintf("v%d.%d.%d%s", v.Major, v.Minor, v.Patch, releaseInfo)
}

// VersionInfo parses the linked git tag. Binaries installed with go install
// carry no tag, so the module version and vcs revision are used instead.
func VersionInfo() Version {
	tag, commit := gitTag, gitCommit
	if tag == "" || commit == "" {
		modTag, modCommit := buildInfo()
		if tag == "" {
			tag = modTag
		}
		if commit == "" {
			commit = modCommit
		}
	}
	v := parseVersion(tag)
	v.Git = commit
	return v
}

func parseVersion(tag string) Version {
	versionInfo := Version{}
	infoParts := strings.SplitN(strings.TrimPrefix(tag, "v"), "-", 2)

	versionParts := strings.Split(infoParts[0], ".")
	versionInfo.Major, _ = strconv.Atoi(versionParts[0])
	if len(versionParts) > 1 {
		versionInfo.Minor, _ = strconv.Atoi(versionParts[1])
	}
	if len(versionParts) > 2 {
		versionInfo.Patch, _ = strconv.Atoi(versionParts[2])
	}
	if len(infoParts) > 1 {
		versionInfo.Release = infoParts[1]
	}
	return versionInfo
}

func buildInfo() (string, string) {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "", ""
	}
	var commit string
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" {
			commit = s.Value
		}
	}
	tag := info.Main.Version
	if tag == "(devel)" {
		tag = ""
	}
	return tag, commit
}
