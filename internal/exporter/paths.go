package exporter

import (
	"path/filepath"
	"strings"
)

// Template placeholders.
const (
	VarModID        = "modid"
	VarProjectName  = "projectname"
	VarModelName    = "modelname"
	VarSkeletonName = "skeletonname"
	VarAnimName     = "animname"
)

// ExpandTemplate replaces every {name} in tmpl with vars[name]. Unknown
// placeholders are left untouched.
func ExpandTemplate(tmpl string, vars map[string]string) string {
	pairs := make([]string, 0, 2*len(vars))
	for k, v := range vars {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
}

// AssetPath maps an asset location below the resource folder dir.
// "modid:path/file" becomes dir/assets/modid/path/file; a location without a
// domain is taken relative to dir.
func AssetPath(dir, location string) string {
	domain, rest, ok := strings.Cut(location, ":")
	if !ok || domain == "" || strings.ContainsAny(domain, `/\`) {
		return filepath.Join(dir, filepath.FromSlash(location))
	}
	return filepath.Join(dir, "assets", domain, filepath.FromSlash(rest))
}
