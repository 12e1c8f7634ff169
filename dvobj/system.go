package dvobj

import (
	"math/rand"
	"os"
	"runtime"
	"strings"
	"time"

	hclversion "github.com/hashicorp/go-version"

	"github.com/hvml/purc-go/errors"
	"github.com/hvml/purc-go/variant"
)

// NewSystem builds the system DVObj: uname, locale, random, time, plus the
// original's const/env/time_us properties (SPEC_FULL §11).
func NewSystem(version string) *variant.Variant {
	obj := variant.NewObject()
	slot := errors.NewSlot()

	set(obj, slot, "uname", sysUname)
	set(obj, slot, "locale", sysLocale)
	set(obj, slot, "random", sysRandom)
	set(obj, slot, "time", sysTime)
	set(obj, slot, "const", sysConst)
	set(obj, slot, "env", sysEnv)
	set(obj, slot, "time_us", sysTimeUs)
	set(obj, slot, "version", makeSysVersion(version))

	return obj
}

// uname reports a subset of what the original's uname_prt queries
// (sysname, nodename, release, version, machine): Go has no portable struct utsname,
// so the process runtime's own identifiers stand in for the C original's
// sys/utsname.h fields.
func sysUname(args []*variant.Variant) (*variant.Variant, error) {
	want := "sysname nodename release version machine"
	if len(args) >= 1 {
		s, ok := args[0].AsString()
		if !ok {
			return nil, errors.E(errors.WrongArgs, "system.uname argument must be a string")
		}
		if s != "" {
			want = s
		}
	}

	host, _ := os.Hostname()
	fields := map[string]string{
		"sysname":  runtime.GOOS,
		"nodename": host,
		"release":  runtime.Version(),
		"version":  runtime.Version(),
		"machine":  runtime.GOARCH,
	}

	var parts []string
	for _, name := range strings.Fields(want) {
		if v, ok := fields[name]; ok {
			parts = append(parts, v)
		}
	}
	return variant.NewString(strings.Join(parts, " "))
}

// locale reports the POSIX-style locale category the original's locale
// getter exposes (ctype, numeric, time, …); Go processes have no libc
// locale state, so every category reports "C".
func sysLocale(args []*variant.Variant) (*variant.Variant, error) {
	if len(args) < 1 {
		return variant.NewString("C")
	}
	_, ok := args[0].AsString()
	if !ok {
		return nil, errors.E(errors.WrongArgs, "system.locale argument must be a string")
	}
	return variant.NewString("C")
}

func sysRandom(args []*variant.Variant) (*variant.Variant, error) {
	if len(args) < 1 {
		return variant.NewNumber(rand.Float64()), nil
	}
	n, ok := args[0].AsFloat64()
	if !ok || n <= 0 {
		return nil, errors.E(errors.WrongArgs, "system.random upper bound must be a positive number")
	}
	return variant.NewNumber(rand.Float64() * n), nil
}

func sysTime(args []*variant.Variant) (*variant.Variant, error) {
	return variant.NewULongInt(uint64(time.Now().Unix())), nil
}

func sysTimeUs(args []*variant.Variant) (*variant.Variant, error) {
	return variant.NewULongInt(uint64(time.Now().UnixMicro())), nil
}

// const reports the named build-time constant; only OS and ARCH are known,
// and any other name reports NotExists.
func sysConst(args []*variant.Variant) (*variant.Variant, error) {
	if len(args) < 1 {
		return nil, errors.E(errors.WrongArgs, "system.const requires a name argument")
	}
	name, ok := args[0].AsString()
	if !ok {
		return nil, errors.E(errors.WrongArgs, "system.const argument must be a string")
	}
	switch name {
	case "OS":
		return variant.NewString(runtime.GOOS)
	case "ARCH":
		return variant.NewString(runtime.GOARCH)
	default:
		return nil, errors.E(errors.NotExists, "no such system constant %q", name)
	}
}

func sysEnv(args []*variant.Variant) (*variant.Variant, error) {
	if len(args) < 1 {
		return nil, errors.E(errors.WrongArgs, "system.env requires a name argument")
	}
	name, ok := args[0].AsString()
	if !ok {
		return nil, errors.E(errors.WrongArgs, "system.env argument must be a string")
	}
	v, found := os.LookupEnv(name)
	if !found {
		return variant.NewUndefined(), nil
	}
	return variant.NewString(v)
}

func makeSysVersion(version string) variant.Getter {
	return func(args []*variant.Variant) (*variant.Variant, error) {
		self, err := hclversion.NewVersion(version)
		if err != nil {
			return nil, errors.E(errors.InvalidValue, "interpreter version %q is not parseable: %v", version, err)
		}
		if len(args) < 1 {
			return variant.NewString(self.String())
		}
		constraintStr, ok := args[0].AsString()
		if !ok {
			return nil, errors.E(errors.WrongArgs, "system.version argument must be a constraint string")
		}
		constraints, err := hclversion.NewConstraint(constraintStr)
		if err != nil {
			return nil, errors.E(errors.InvalidValue, "bad version constraint %q: %v", constraintStr, err)
		}
		return variant.NewBoolean(constraints.Check(self)), nil
	}
}
