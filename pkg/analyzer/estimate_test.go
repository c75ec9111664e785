package analyzer

import (
	"testing"

	"github.com/mwittig/packsize/pkg/manifest"
)

func TestEstimateImageSizes_Python(t *testing.T) {
	packages := []PackageInfo{
		{Name: "flask", Size: 3 * mib},
		{Name: "requests", Size: 2 * mib},
		{Name: "unresolved", Size: 0},
	}

	est := EstimateImageSizes(packages, manifest.Python)

	total := int64(5 * mib)
	overhead := total * 15 / 100

	if want := int64(100*mib) + total + overhead; est.Full != want {
		t.Errorf("Full = %d, want %d", est.Full, want)
	}
	if diff := est.Full - est.Slim; diff != 60*mib {
		t.Errorf("Full-Slim = %d, want %d", diff, int64(60*mib))
	}
	if diff := est.Full - est.Alpine; diff != 85*mib {
		t.Errorf("Full-Alpine = %d, want %d", diff, int64(85*mib))
	}
}

func TestEstimateImageSizes_Node(t *testing.T) {
	est := EstimateImageSizes(nil, manifest.Node)

	if est.Full != 85*mib || est.Slim != 35*mib || est.Alpine != 12*mib {
		t.Errorf("empty package set should yield bare base sizes, got %+v", est)
	}
}

func TestEstimateImageSizes_OverheadFloors(t *testing.T) {
	// 7 bytes * 0.15 = 1.05, floors to 1.
	est := EstimateImageSizes([]PackageInfo{{Size: 7}}, manifest.Python)
	if want := int64(100*mib) + 7 + 1; est.Full != want {
		t.Errorf("Full = %d, want %d", est.Full, want)
	}
}
