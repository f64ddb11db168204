// Copyright 2026 Google Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package sensors

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	l "github.com/yambar-modules/temperature/logging"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

var fs = afero.NewOsFs()

// readlink resolves a symlink in fs. afero's in-memory filesystem has no
// symlinks, so tests replace this.
var readlink = func(name string) (string, error) {
	if lr, ok := fs.(afero.LinkReader); ok {
		return lr.ReadlinkIfPossible(name)
	}
	return "", &os.PathError{Op: "readlink", Path: name, Err: afero.ErrNoReadlink}
}

// Hwmon is a Source backed by the kernel's hwmon sysfs interface.
// Every call to Chips walks sysfs again, and every Value reads the
// attribute file again.
type Hwmon struct {
	root string
}

// NewHwmon returns a Source for /sys/class/hwmon.
func NewHwmon() *Hwmon {
	return &Hwmon{root: "/sys/class/hwmon"}
}

// Chips implements Source.
func (h *Hwmon) Chips() ([]Chip, error) {
	entries, err := afero.ReadDir(fs, h.root)
	if err != nil {
		return nil, errors.Wrapf(err, "listing %s", h.root)
	}
	var chips []Chip
	for _, e := range entries {
		if !strings.HasPrefix(e.Name(), "hwmon") {
			continue
		}
		c := openChip(filepath.Join(h.root, e.Name()))
		l.Fine("%s: name=%q err=%v attrs=%s", c.dir, c.name, c.nameErr, c.attrDir)
		chips = append(chips, c)
	}
	return chips, nil
}

type hwmonChip struct {
	dir     string
	attrDir string
	name    string
	nameErr error
}

func openChip(dir string) *hwmonChip {
	c := &hwmonChip{dir: dir, attrDir: dir}
	prefix, err := readName(dir)
	if err != nil {
		// Older drivers keep their attributes on the parent device.
		devDir := filepath.Join(dir, "device")
		if p, devErr := readName(devDir); devErr == nil {
			c.attrDir = devDir
			prefix, err = p, nil
		}
	}
	if err != nil {
		c.nameErr = err
		return c
	}
	c.name, c.nameErr = chipName(prefix, dir)
	return c
}

func readName(dir string) (string, error) {
	b, err := afero.ReadFile(fs, filepath.Join(dir, "name"))
	if err != nil {
		return "", err
	}
	name := strings.TrimSpace(string(b))
	if name == "" {
		return "", errors.Errorf("%s: empty chip name", dir)
	}
	return name, nil
}

// chipName builds the libsensors name of a chip from its prefix and the
// bus its device sits on, e.g. coretemp-isa-0000 or lm75-i2c-0-48.
func chipName(prefix, dir string) (string, error) {
	devLink, err := readlink(filepath.Join(dir, "device"))
	if err != nil {
		return fmt.Sprintf("%s-virtual-0", prefix), nil
	}
	dev := filepath.Base(devLink)
	subLink, err := readlink(filepath.Join(dir, "device", "subsystem"))
	if err != nil {
		return "", errors.Wrapf(err, "%s: resolving bus", dir)
	}
	switch bus := filepath.Base(subLink); bus {
	case "i2c":
		var nr int
		var addr uint
		if _, err := fmt.Sscanf(dev, "%d-%x", &nr, &addr); err != nil {
			return "", errors.Wrapf(err, "%s: i2c device %q", dir, dev)
		}
		return fmt.Sprintf("%s-i2c-%d-%02x", prefix, nr, addr), nil
	case "spi":
		var nr int
		var addr uint
		if _, err := fmt.Sscanf(dev, "spi%d.%d", &nr, &addr); err != nil {
			return "", errors.Wrapf(err, "%s: spi device %q", dir, dev)
		}
		return fmt.Sprintf("%s-spi-%d-%x", prefix, nr, addr), nil
	case "pci":
		var domain, pbus, slot, fn uint
		if _, err := fmt.Sscanf(dev, "%x:%x:%x.%x", &domain, &pbus, &slot, &fn); err != nil {
			return "", errors.Wrapf(err, "%s: pci device %q", dir, dev)
		}
		addr := domain<<16 + pbus<<8 + slot<<3 + fn
		return fmt.Sprintf("%s-pci-%04x", prefix, addr), nil
	case "platform", "of_platform", "isa":
		return fmt.Sprintf("%s-isa-%04x", prefix, suffixNumber(dev, ".", 10)), nil
	case "acpi":
		return fmt.Sprintf("%s-acpi-%x", prefix, suffixNumber(dev, ":", 10)), nil
	case "hid":
		var hbus, vendor, product, addr uint
		if _, err := fmt.Sscanf(dev, "%x:%x:%x.%x", &hbus, &vendor, &product, &addr); err != nil {
			return "", errors.Wrapf(err, "%s: hid device %q", dir, dev)
		}
		return fmt.Sprintf("%s-hid-%d-%x", prefix, hbus, addr), nil
	case "scsi":
		var host, channel, id int
		var lun uint
		if _, err := fmt.Sscanf(dev, "%d:%d:%d:%x", &host, &channel, &id, &lun); err != nil {
			return "", errors.Wrapf(err, "%s: scsi device %q", dir, dev)
		}
		return fmt.Sprintf("%s-scsi-%d-%x", prefix, host, lun), nil
	case "mdio_bus":
		return fmt.Sprintf("%s-mdio-%x", prefix, suffixNumber(dev, ":", 16)), nil
	default:
		return "", errors.Errorf("%s: unsupported bus %q", dir, bus)
	}
}

// suffixNumber parses the number after the last sep in s, or 0.
func suffixNumber(s, sep string, base int) uint64 {
	i := strings.LastIndex(s, sep)
	if i < 0 {
		return 0
	}
	n, err := strconv.ParseUint(s[i+len(sep):], base, 32)
	if err != nil {
		return 0
	}
	return n
}

func (c *hwmonChip) Name() (string, error) {
	return c.name, c.nameErr
}

var attrRx = regexp.MustCompile(`^([a-z]+)(\d+)_([a-z_]+)$`)

func (c *hwmonChip) Features() []Feature {
	entries, err := afero.ReadDir(fs, c.attrDir)
	if err != nil {
		l.Log("%s: %v", c.attrDir, err)
		return nil
	}
	byName := map[string]*hwmonFeature{}
	for _, e := range entries {
		m := attrRx.FindStringSubmatch(e.Name())
		if m == nil {
			continue
		}
		typ, ok := featurePrefixes[m[1]]
		if !ok {
			continue
		}
		subTyp, ok := LookupSubfeature(typ, m[3])
		if !ok {
			continue
		}
		num, _ := strconv.Atoi(m[2])
		name := m[1] + m[2]
		f, ok := byName[name]
		if !ok {
			f = &hwmonFeature{name: name, typ: typ, num: num}
			byName[name] = f
		}
		f.subs = append(f.subs, &hwmonSubfeature{
			path:  filepath.Join(c.attrDir, e.Name()),
			name:  e.Name(),
			typ:   subTyp,
			scale: scale(typ, m[3]),
		})
	}
	features := make([]*hwmonFeature, 0, len(byName))
	for _, f := range byName {
		sort.Slice(f.subs, func(i, j int) bool { return f.subs[i].typ < f.subs[j].typ })
		features = append(features, f)
	}
	sort.Slice(features, func(i, j int) bool {
		if features[i].typ != features[j].typ {
			return features[i].typ < features[j].typ
		}
		return features[i].num < features[j].num
	})
	out := make([]Feature, len(features))
	for i, f := range features {
		out[i] = f
	}
	return out
}

type hwmonFeature struct {
	name string
	typ  FeatureType
	num  int
	subs []*hwmonSubfeature
}

func (f *hwmonFeature) Name() string      { return f.name }
func (f *hwmonFeature) Type() FeatureType { return f.typ }

func (f *hwmonFeature) Subfeatures() []Subfeature {
	out := make([]Subfeature, len(f.subs))
	for i, s := range f.subs {
		out[i] = s
	}
	return out
}

type hwmonSubfeature struct {
	path  string
	name  string
	typ   SubfeatureType
	scale float64
}

func (s *hwmonSubfeature) Name() string         { return s.name }
func (s *hwmonSubfeature) Type() SubfeatureType { return s.typ }

func (s *hwmonSubfeature) Value() (float64, error) {
	b, err := afero.ReadFile(fs, s.path)
	if err != nil {
		return 0, err
	}
	raw, err := strconv.ParseFloat(strings.TrimSpace(string(b)), 64)
	if err != nil {
		return 0, errors.Wrapf(err, "parsing %s", s.path)
	}
	return raw / s.scale, nil
}
