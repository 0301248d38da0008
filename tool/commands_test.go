package tool_test

import (
	"strings"
	"testing"

	"github.com/YoungY620/utgen/tool"
	"github.com/stretchr/testify/assert"
)

func TestNewTarget(t *testing.T) {
	target := tool.NewTarget("motor_ctrl")
	assert.Equal(t, "motor_ctrl", target.Module)
	assert.Equal(t, "MOTOR_CTRL", target.Environment)
	assert.Equal(t, "MOTOR_CTRL.tst", target.MasterScriptName())
	assert.Equal(t, "MOTOR_CTRL_copy.tst", target.ScratchScriptName())
	assert.Equal(t, map[string]string{
		"Unit_name":        "motor_ctrl",
		"Environment_Name": "MOTOR_CTRL",
	}, target.Env())
}

func TestMasterScript(t *testing.T) {
	inv := tool.MasterScript(tool.NewTarget("demo"))
	assert.Equal(t, []string{"-lc", "-e", "DEMO", "TESt", "Script", "CReate", "DEMO.tst"}, inv.Args)
	assert.Equal(t, "DEMO.tst", inv.Output)
	assert.Equal(t, "demo", inv.Env["Unit_name"])
}

func TestReport(t *testing.T) {
	target := tool.NewTarget("demo")
	want := map[string][]string{
		"management": {"-lc", "-e", "DEMO", "Reports", "Custom", "MAnagement", "demo_Testcase_Management_Report.html"},
		"execution":  {"-lc", "-e", "DEMO", "Reports", "Custom", "ACtual", "demo_Execution_Results_Report.html"},
		"full":       {"-lc", "-e", "DEMO", "Reports", "Custom", "FULl", "demo_Full_Report.html"},
	}

	assert.Len(t, tool.Reports, 3)
	for _, kind := range tool.Reports {
		inv := tool.Report(target, kind)
		assert.Equal(t, want[kind.Name], inv.Args, kind.Name)
		assert.Equal(t, kind.FileName("demo"), inv.Output)
	}
}

func TestSubprogramScript(t *testing.T) {
	inv := tool.SubprogramScript(tool.NewTarget("demo"), "calcTotal")
	assert.Equal(t, []string{"-e", "DEMO", "-u", "demo", "-s", "calcTotal", "TESt", "Script", "CReate", "calcTotal.tst"}, inv.Args)
	assert.Equal(t, "calcTotal.tst", inv.Output)
}

func TestCompoundScriptCmd(t *testing.T) {
	inv := tool.CompoundScriptCmd(tool.NewTarget("demo"))
	assert.Equal(t, []string{"-e", "DEMO", "-u", "demo", "-s", "<<COMPOUND>>", "TESt", "Script", "CReate", "__COMPOUND__.tst"}, inv.Args)
	assert.Equal(t, tool.CompoundScript, inv.Output)
}

func TestInvocation_String(t *testing.T) {
	inv := tool.CompoundScriptCmd(tool.NewTarget("demo"))
	s := inv.String()
	assert.True(t, strings.HasPrefix(s, "-e DEMO -u demo -s "), s)
	assert.True(t, strings.HasSuffix(s, " TESt Script CReate __COMPOUND__.tst"), s)
	assert.NotContains(t, s, " <<COMPOUND>> ", "reserved name must be quoted for display")

	assert.Equal(t, "-lc -e DEMO TESt Script CReate DEMO.tst", tool.MasterScript(tool.NewTarget("demo")).String())
}
