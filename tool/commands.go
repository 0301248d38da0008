package tool

import (
	"github.com/kballard/go-shellquote"
)

const (
	// CompoundSubprogram is the reserved -s value that selects compound test cases.
	CompoundSubprogram = "<<COMPOUND>>"
	// CompoundScript is the file the compound script is written to.
	CompoundScript = "__COMPOUND__.tst"
)

// ReportKind is one of the custom reports clicast can render.
type ReportKind struct {
	Name   string // short label for logs
	Option string // clicast "Reports Custom" keyword
	Suffix string // appended to the module name
}

// FileName returns the report file clicast writes for module.
func (k ReportKind) FileName(module string) string {
	return module + k.Suffix
}

// Reports lists the reports a run produces, in generation order.
var Reports = []ReportKind{
	{Name: "management", Option: "MAnagement", Suffix: "_Testcase_Management_Report.html"},
	{Name: "execution", Option: "ACtual", Suffix: "_Execution_Results_Report.html"},
	{Name: "full", Option: "FULl", Suffix: "_Full_Report.html"},
}

// Target names the module and environment a command operates on.
type Target struct {
	Module      string
	Environment string
}

// NewTarget derives the environment name from module.
func NewTarget(module string) Target {
	return Target{Module: module, Environment: EnvironmentName(module)}
}

// Env returns the variables clicast reads for the unit and environment.
func (t Target) Env() map[string]string {
	return map[string]string{
		"Unit_name":        t.Module,
		"Environment_Name": t.Environment,
	}
}

// MasterScriptName is the script holding every test case of the environment.
func (t Target) MasterScriptName() string { return t.Environment + ".tst" }

// ScratchScriptName is the working copy the subprogram names are read from.
func (t Target) ScratchScriptName() string { return t.Environment + "_copy.tst" }

// SubprogramScriptName is the per-function script file for name.
func SubprogramScriptName(name string) string { return name + ".tst" }

// Invocation is one clicast call: an explicit argument list, the variables
// set on that child process only, and the file the call should produce.
type Invocation struct {
	Args   []string
	Env    map[string]string
	Output string
}

// String renders the arguments shell-quoted, for logs.
func (inv Invocation) String() string {
	return shellquote.Join(inv.Args...)
}

func scriptCreate(out string) []string {
	return []string{"TESt", "Script", "CReate", out}
}

// MasterScript creates <ENV>.tst for the whole environment.
func MasterScript(t Target) Invocation {
	out := t.MasterScriptName()
	args := append([]string{"-lc", "-e", t.Environment}, scriptCreate(out)...)
	return Invocation{Args: args, Env: t.Env(), Output: out}
}

// Report renders one custom report for the environment.
func Report(t Target, kind ReportKind) Invocation {
	out := kind.FileName(t.Module)
	args := []string{"-lc", "-e", t.Environment, "Reports", "Custom", kind.Option, out}
	return Invocation{Args: args, Env: t.Env(), Output: out}
}

// SubprogramScript creates <name>.tst holding the test cases of one subprogram.
func SubprogramScript(t Target, name string) Invocation {
	out := SubprogramScriptName(name)
	args := append([]string{"-e", t.Environment, "-u", t.Module, "-s", name}, scriptCreate(out)...)
	return Invocation{Args: args, Env: t.Env(), Output: out}
}

// CompoundScriptCmd creates __COMPOUND__.tst holding the compound test cases.
func CompoundScriptCmd(t Target) Invocation {
	args := append([]string{"-e", t.Environment, "-u", t.Module, "-s", CompoundSubprogram}, scriptCreate(CompoundScript)...)
	return Invocation{Args: args, Env: t.Env(), Output: CompoundScript}
}
