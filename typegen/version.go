package typegen

import (
	"strconv"

	"github.com/teranos/a2ml/errors"
	"github.com/teranos/a2ml/model"
)

// CheckVersions verifies that every exported interface declares the run's
// message version. Generators call it before writing anything.
func CheckVersions(m *model.Model) error {
	for _, iface := range m.ExportedInterfaces() {
		if err := CheckVersion(m, iface); err != nil {
			return err
		}
	}
	return nil
}

// CheckVersion verifies a single interface against the run's message version.
func CheckVersion(m *model.Model, iface *model.Interface) error {
	if iface.Version == m.Version {
		return nil
	}
	var err error = errors.NewKind(errors.VersionMismatch,
		"interface %s declares version %s but the run targets %s", iface.Topic, iface.Version, m.Version).
		ForSymbol(iface.Key()).InFile(iface.SourceFile)
	err = errors.WithHintf(err, "update the version field or run with --message-version %s", iface.Version)
	if sameNumber(iface.Version, m.Version) {
		err = errors.WithHintf(err, "quote the version in the document (version = \"%s\") so it is not read as a number", m.Version)
	}
	return err
}

// sameNumber reports whether two distinct version strings denote the same
// decimal number, as when 4.10 was decoded from an unquoted float.
func sameNumber(a, b string) bool {
	x, errA := strconv.ParseFloat(a, 64)
	y, errB := strconv.ParseFloat(b, 64)
	return errA == nil && errB == nil && x == y
}
