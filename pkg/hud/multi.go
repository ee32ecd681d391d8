package hud

// Multi fans every hook out to a list of presenters in order.
// Use it to drive, say, a terminal and a remote HUD from one client.
type Multi []Presenter

func (m Multi) StartCameraHUD() {
	for _, p := range m {
		p.StartCameraHUD()
	}
}

func (m Multi) StopCameraHUD() {
	for _, p := range m {
		p.StopCameraHUD()
	}
}

func (m Multi) ResetHUD() {
	for _, p := range m {
		p.ResetHUD()
	}
}

func (m Multi) PreviewReady() {
	for _, p := range m {
		p.PreviewReady()
	}
}

func (m Multi) StartScan() {
	for _, p := range m {
		p.StartScan()
	}
}

func (m Multi) SetStageProgress(stage int, percent int) {
	for _, p := range m {
		p.SetStageProgress(stage, percent)
	}
}

func (m Multi) FinishScan(report Report) {
	for _, p := range m {
		p.FinishScan(report)
	}
}

func (m Multi) DrawRegions(regions []Region) {
	for _, p := range m {
		p.DrawRegions(regions)
	}
}

func (m Multi) AnimateScore(score int) {
	for _, p := range m {
		p.AnimateScore(score)
	}
}

func (m Multi) Alert(msg string) {
	for _, p := range m {
		p.Alert(msg)
	}
}

func (m Multi) ScanError(msg string) {
	for _, p := range m {
		p.ScanError(msg)
	}
}

var _ Presenter = Multi{}
