package version

import "testing"

func TestInfo(t *testing.T) {
	bi := Info()
	if bi.Service != Service || bi.Pipeline != PipelineVersion {
		t.Fatalf("Info = %+v", bi)
	}
	if bi.Version == "" || bi.Commit == "" || bi.Date == "" {
		t.Fatalf("ldflag defaults missing: %+v", bi)
	}
}
