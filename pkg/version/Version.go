package version

import "strings"

type Version struct {
	Release string `json:"release"`
}

func New(release string) *Version {
	return &Version{
		Release: strings.TrimSpace(release),
	}
}

func (v *Version) ToString() string {
	if v == nil || v.Release == "" {
		return "dev"
	}

	return v.Release
}
