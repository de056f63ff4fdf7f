package commands

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/colonyops/cuesync/internal/core/doctor"
	"github.com/colonyops/cuesync/pkg/tuitest"
)

func TestWriteDoctorReport(t *testing.T) {
	report := doctorReport{
		Passed:  1,
		Failed:  1,
		Fixable: 1,
		Checks: []doctor.Result{
			{Name: "Tools", Items: []doctor.CheckItem{
				{Label: "ffprobe", Status: doctor.StatusPass, Detail: "/usr/bin/ffprobe"},
			}},
			{Name: "Tracks", Items: []doctor.CheckItem{
				{Label: "ep1 #2", Status: doctor.StatusFail, Detail: "overlaps #3", Fixable: true},
			}},
		},
	}

	var buf bytes.Buffer
	writeDoctorReport(&buf, report, false)
	out := tuitest.StripANSI(buf.String())

	assert.Contains(t, out, "✔ ffprobe /usr/bin/ffprobe")
	assert.Contains(t, out, "✘ ep1 #2 overlaps #3")
	assert.Contains(t, out, "1 passed  0 warnings  1 failed")
	assert.Contains(t, out, "--autofix' to fix 1 issue(s)")

	buf.Reset()
	writeDoctorReport(&buf, report, true)
	assert.NotContains(t, buf.String(), "--autofix")
}
