package libretro

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/user-none/enes/emu"
)

type logLine struct {
	level LogLevel
	msg   string
}

type inputQuery struct {
	port, device, index, id uint
}

type videoCall struct {
	frame                []uint32
	width, height, pitch int
}

// fakeFrontend records every callback the core makes.
type fakeFrontend struct {
	rejectPixelFormat bool
	noLogInterface    bool
	variablesUpdated  bool
	pressed           map[inputQuery]bool

	calls         []string
	supportNoGame []bool
	pixelFormats  []PixelFormat
	logs          []logLine
	queries       []inputQuery
	video         []videoCall
	audioFrames   []int
}

func newFakeFrontend() *fakeFrontend {
	return &fakeFrontend{pressed: make(map[inputQuery]bool)}
}

func (f *fakeFrontend) press(port, id uint) {
	f.pressed[inputQuery{port: port, device: DeviceJoypad, id: id}] = true
}

func (f *fakeFrontend) SetSupportNoGame(supported bool) bool {
	f.calls = append(f.calls, "support_no_game")
	f.supportNoGame = append(f.supportNoGame, supported)
	return true
}

func (f *fakeFrontend) LogInterface() (LogFunc, bool) {
	f.calls = append(f.calls, "log_interface")
	if f.noLogInterface {
		return nil, false
	}
	return func(level LogLevel, msg string) {
		f.logs = append(f.logs, logLine{level, strings.TrimSpace(msg)})
	}, true
}

func (f *fakeFrontend) SetPixelFormat(format PixelFormat) bool {
	f.calls = append(f.calls, "pixel_format")
	f.pixelFormats = append(f.pixelFormats, format)
	return !f.rejectPixelFormat
}

func (f *fakeFrontend) VariablesUpdated() bool {
	f.calls = append(f.calls, "variable_update")
	return f.variablesUpdated
}

func (f *fakeFrontend) VideoRefresh(frame []uint32, width, height, pitch int) {
	f.calls = append(f.calls, "video")
	f.video = append(f.video, videoCall{append([]uint32(nil), frame...), width, height, pitch})
}

func (f *fakeFrontend) AudioSampleBatch(samples []int16, frames int) int {
	f.calls = append(f.calls, "audio")
	f.audioFrames = append(f.audioFrames, frames)
	return frames
}

func (f *fakeFrontend) InputPoll() {
	f.calls = append(f.calls, "input_poll")
}

func (f *fakeFrontend) InputState(port, device, index, id uint) int16 {
	q := inputQuery{port, device, index, id}
	f.queries = append(f.queries, q)
	if f.pressed[q] {
		return 1
	}
	return 0
}

func (f *fakeFrontend) count(call string) int {
	n := 0
	for _, c := range f.calls {
		if c == call {
			n++
		}
	}
	return n
}

func (f *fakeFrontend) hasLog(level LogLevel, msg string) bool {
	for _, l := range f.logs {
		if l.level == level && strings.Contains(l.msg, msg) {
			return true
		}
	}
	return false
}

// fakeEngine paints a deterministic pattern and records what it was given.
type fakeEngine struct {
	loadErr   error
	noFrame   bool
	loaded    []byte
	frames    int
	inputs    [][2]emu.Input
	closed    int
	pixelBase uint8
}

func (e *fakeEngine) LoadINES(data []byte) error {
	if e.loadErr != nil {
		return e.loadErr
	}
	e.loaded = data
	return nil
}

func (e *fakeEngine) NextFrame() bool {
	e.frames++
	return !e.noFrame
}

func (e *fakeEngine) ScreenPixel(x, y int) emu.Color {
	return emu.Color{R: uint8(x), G: uint8(y), B: e.pixelBase, A: 0xFF}
}

func (e *fakeEngine) SetInput(p1, p2 emu.Input) {
	e.inputs = append(e.inputs, [2]emu.Input{p1, p2})
}

func (e *fakeEngine) Close() {
	e.closed++
}

// engineFactory hands out fake engines and keeps them for inspection.
type engineFactory struct {
	engines []*fakeEngine
	setup   func(*fakeEngine)
}

func (f *engineFactory) New() Engine {
	e := &fakeEngine{}
	if f.setup != nil {
		f.setup(e)
	}
	f.engines = append(f.engines, e)
	return e
}

func (f *engineFactory) last() *fakeEngine {
	return f.engines[len(f.engines)-1]
}

func newTestCore(t *testing.T) (*Core, *fakeFrontend, *engineFactory) {
	t.Helper()
	fe := newFakeFrontend()
	ef := &engineFactory{}
	c := NewCore(fe, ef.New)
	c.Init()
	c.SetEnvironment()
	return c, fe, ef
}

func loadFake(t *testing.T, c *Core) {
	t.Helper()
	if !c.LoadGame(GameInfo{Path: "test.nes", Data: []byte("rom")}) {
		t.Fatal("LoadGame failed")
	}
}

func TestCore_InitDeinit(t *testing.T) {
	ef := &engineFactory{}
	c := NewCore(newFakeFrontend(), ef.New)
	if c.HasEngine() {
		t.Fatal("engine exists before Init")
	}
	c.Init()
	if !c.HasEngine() {
		t.Fatal("no engine after Init")
	}
	if len(c.Frame()) != FrameWidth*FrameHeight {
		t.Errorf("frame length = %d, want %d", len(c.Frame()), FrameWidth*FrameHeight)
	}
	c.Deinit()
	if c.HasEngine() {
		t.Error("engine survives Deinit")
	}
	if ef.engines[0].closed != 1 {
		t.Errorf("engine closed %d times, want 1", ef.engines[0].closed)
	}
}

func TestCore_SetEnvironment(t *testing.T) {
	c, fe, _ := newTestCore(t)
	if len(fe.supportNoGame) != 1 || fe.supportNoGame[0] {
		t.Errorf("SetSupportNoGame calls = %v, want [false]", fe.supportNoGame)
	}
	c.SetControllerPortDevice(1, DeviceJoypad)
	if !fe.hasLog(LogInfo, "Plugging device 1 into port 1.") {
		t.Errorf("logs = %+v, want plug message at info", fe.logs)
	}
}

func TestCore_FallbackLogger(t *testing.T) {
	var buf bytes.Buffer
	saved := stderr
	stderr = &buf
	defer func() { stderr = saved }()

	fe := newFakeFrontend()
	fe.noLogInterface = true
	c := NewCore(fe, (&engineFactory{}).New)
	c.Init()
	c.SetEnvironment()
	c.SetControllerPortDevice(0, DeviceJoypad)

	if !strings.Contains(buf.String(), "Plugging device 1 into port 0.") {
		t.Errorf("stderr = %q, want plug message", buf.String())
	}
	if len(fe.logs) != 0 {
		t.Errorf("frontend received %d log lines without a log interface", len(fe.logs))
	}
}

func TestCore_APIVersionAndInfo(t *testing.T) {
	c, _, _ := newTestCore(t)
	if c.APIVersion() != 1 {
		t.Errorf("APIVersion = %d, want 1", c.APIVersion())
	}

	info := c.SystemInfo()
	if info.LibraryName != emu.Name || info.LibraryVersion != emu.Version {
		t.Errorf("library = %s %s", info.LibraryName, info.LibraryVersion)
	}
	if info.ValidExtensions != "nes" {
		t.Errorf("ValidExtensions = %q, want nes", info.ValidExtensions)
	}
	if info.NeedFullpath {
		t.Error("NeedFullpath = true")
	}

	av := c.SystemAVInfo()
	g := av.Geometry
	if g.BaseWidth != 256 || g.BaseHeight != 240 || g.MaxWidth != 256 || g.MaxHeight != 240 {
		t.Errorf("geometry = %+v", g)
	}
	if g.AspectRatio != float32(256)/float32(240) {
		t.Errorf("AspectRatio = %v", g.AspectRatio)
	}
	if av.Timing.FPS != 60 || av.Timing.SampleRate != 0 {
		t.Errorf("timing = %+v", av.Timing)
	}
	if c.Region() != RegionNTSC {
		t.Errorf("Region = %d, want NTSC", c.Region())
	}
}

func TestCore_LoadGame(t *testing.T) {
	c, fe, ef := newTestCore(t)
	data := []byte{1, 2, 3}
	if !c.LoadGame(GameInfo{Data: data}) {
		t.Fatal("LoadGame failed")
	}
	if !c.Loaded() {
		t.Error("Loaded = false")
	}
	if !bytes.Equal(ef.last().loaded, data) {
		t.Errorf("engine received %v, want %v", ef.last().loaded, data)
	}
	if len(fe.pixelFormats) != 1 || fe.pixelFormats[0] != PixelFormatXRGB8888 {
		t.Errorf("pixel formats = %v, want [XRGB8888]", fe.pixelFormats)
	}
}

func TestCore_LoadGamePixelFormatRejected(t *testing.T) {
	c, fe, ef := newTestCore(t)
	fe.rejectPixelFormat = true
	if c.LoadGame(GameInfo{Data: []byte("rom")}) {
		t.Fatal("LoadGame succeeded without XRGB8888")
	}
	if !fe.hasLog(LogInfo, "XRGB8888 is not supported.") {
		t.Errorf("logs = %+v", fe.logs)
	}
	if ef.last().loaded != nil {
		t.Error("engine was handed the ROM")
	}
	if c.Loaded() {
		t.Error("Loaded = true")
	}
}

func TestCore_LoadGameEngineFailure(t *testing.T) {
	fe := newFakeFrontend()
	ef := &engineFactory{setup: func(e *fakeEngine) { e.loadErr = errors.New("bad header") }}
	c := NewCore(fe, ef.New)
	c.Init()
	c.SetEnvironment()

	if c.LoadGame(GameInfo{Data: []byte("junk")}) {
		t.Fatal("LoadGame succeeded")
	}
	if !fe.hasLog(LogError, "Loading game failed.") {
		t.Errorf("logs = %+v, want error log", fe.logs)
	}
	if c.Loaded() {
		t.Error("Loaded = true after failure")
	}
	c.Run()
	if len(fe.video) != 0 {
		t.Error("Run produced video after a failed load")
	}
}

func TestCore_LoadGameReplacesEngine(t *testing.T) {
	c, _, ef := newTestCore(t)
	loadFake(t, c)
	first := ef.last()
	loadFake(t, c)
	if len(ef.engines) != 2 {
		t.Fatalf("created %d engines, want 2", len(ef.engines))
	}
	if first.closed != 1 {
		t.Errorf("first engine closed %d times, want 1", first.closed)
	}
	if ef.last() == first {
		t.Error("second load reused the first engine")
	}
}

func TestCore_LoadGameSpecial(t *testing.T) {
	c, _, ef := newTestCore(t)
	if c.LoadGameSpecial(0, nil) {
		t.Error("LoadGameSpecial with no infos succeeded")
	}
	infos := []GameInfo{{Data: []byte("first")}, {Data: []byte("second")}}
	if !c.LoadGameSpecial(1, infos) {
		t.Fatal("LoadGameSpecial failed")
	}
	if string(ef.last().loaded) != "first" {
		t.Errorf("loaded %q, want first", ef.last().loaded)
	}
}

func TestCore_UnloadGame(t *testing.T) {
	c, fe, ef := newTestCore(t)
	loadFake(t, c)
	c.UnloadGame()
	if c.HasEngine() || c.Loaded() {
		t.Error("engine survives UnloadGame")
	}
	if ef.last().closed != 1 {
		t.Errorf("engine closed %d times", ef.last().closed)
	}
	c.Run()
	if len(fe.video) != 0 {
		t.Error("Run after unload produced video")
	}
	loadFake(t, c)
	if !c.HasEngine() {
		t.Error("load after unload left no engine")
	}
}

func TestCore_RunBeforeLoad(t *testing.T) {
	c, fe, _ := newTestCore(t)
	c.Run()
	if fe.count("video") != 0 || fe.count("audio") != 0 || fe.count("input_poll") != 0 {
		t.Errorf("calls = %v", fe.calls)
	}
}

func TestCore_RunQueriesButtonsInOrder(t *testing.T) {
	c, fe, _ := newTestCore(t)
	loadFake(t, c)
	c.Run()

	order := []uint{JoypadUp, JoypadDown, JoypadLeft, JoypadRight, JoypadA, JoypadB, JoypadStart, JoypadSelect}
	if len(fe.queries) != 16 {
		t.Fatalf("%d input queries, want 16", len(fe.queries))
	}
	for i, q := range fe.queries {
		want := inputQuery{port: uint(i / 8), device: DeviceJoypad, index: 0, id: order[i%8]}
		if q != want {
			t.Errorf("query %d = %+v, want %+v", i, q, want)
		}
	}
}

func TestCore_RunMapsButtons(t *testing.T) {
	c, fe, ef := newTestCore(t)
	loadFake(t, c)
	fe.press(0, JoypadA)
	fe.press(0, JoypadStart)
	fe.press(1, JoypadUp)
	fe.press(1, JoypadSelect)
	fe.press(1, JoypadX) // not an NES button
	c.Run()

	got := ef.last().inputs
	if len(got) != 1 {
		t.Fatalf("SetInput called %d times, want 1", len(got))
	}
	want := [2]emu.Input{
		{A: true, Start: true},
		{Up: true, Select: true},
	}
	if got[0] != want {
		t.Errorf("inputs = %+v, want %+v", got[0], want)
	}
}

func TestCore_RunCallbacks(t *testing.T) {
	c, fe, ef := newTestCore(t)
	loadFake(t, c)
	ef.last().pixelBase = 0x40
	c.Run()

	if len(fe.video) != 1 {
		t.Fatalf("%d video callbacks, want 1", len(fe.video))
	}
	v := fe.video[0]
	if v.width != 256 || v.height != 240 || v.pitch != 1024 {
		t.Errorf("video %dx%d pitch %d", v.width, v.height, v.pitch)
	}
	if len(fe.audioFrames) != 1 || fe.audioFrames[0] != 0 {
		t.Errorf("audio frames = %v, want [0]", fe.audioFrames)
	}
	for _, p := range [][2]int{{0, 0}, {255, 0}, {17, 100}, {255, 239}} {
		x, y := p[0], p[1]
		want := uint32(x)<<24 | uint32(y)<<16 | 0x40<<8 | 0xFF
		if got := v.frame[y*FrameWidth+x]; got != want {
			t.Errorf("pixel (%d,%d) = %#08x, want %#08x", x, y, got, want)
		}
	}

	// Variables are checked after the frame is presented.
	idx := map[string]int{}
	for i, call := range fe.calls {
		if _, ok := idx[call]; !ok {
			idx[call] = i
		}
	}
	if !(idx["input_poll"] < idx["video"] && idx["video"] < idx["audio"] && idx["audio"] < idx["variable_update"]) {
		t.Errorf("call order = %v", fe.calls)
	}
}

func TestCore_RunWithoutFrame(t *testing.T) {
	fe := newFakeFrontend()
	ef := &engineFactory{setup: func(e *fakeEngine) { e.noFrame = true }}
	c := NewCore(fe, ef.New)
	c.Init()
	c.SetEnvironment()
	loadFake(t, c)
	c.Run()
	if len(fe.video) != 1 || len(fe.audioFrames) != 1 {
		t.Errorf("video=%d audio=%d, want one of each", len(fe.video), len(fe.audioFrames))
	}
	if !fe.hasLog(LogDebug, "engine produced no frame") {
		t.Errorf("logs = %+v", fe.logs)
	}
}

func TestCore_InertOperations(t *testing.T) {
	c, _, ef := newTestCore(t)
	loadFake(t, c)
	frames := ef.last().frames

	c.Reset()
	if ef.last().frames != frames || ef.last().closed != 0 {
		t.Error("Reset touched the engine")
	}
	if c.SerializeSize() != 0 {
		t.Errorf("SerializeSize = %d", c.SerializeSize())
	}
	if c.Serialize(make([]byte, 16)) {
		t.Error("Serialize succeeded")
	}
	if c.Unserialize(make([]byte, 16)) {
		t.Error("Unserialize succeeded")
	}
	for _, id := range []uint{MemorySaveRAM, MemoryRTC, MemorySystemRAM, MemoryVideoRAM} {
		if c.MemoryData(id) != nil || c.MemorySize(id) != 0 {
			t.Errorf("memory region %d exposed", id)
		}
	}
	c.CheatReset()
	c.CheatSet(0, true, "SXIOPO")
	if !c.Loaded() {
		t.Error("cheat calls unloaded the game")
	}
}

// nromImage builds a one-bank NROM image that spins in place at $C000.
func nromImage() []byte {
	rom := make([]byte, 16+0x4000+0x2000)
	copy(rom, []byte{'N', 'E', 'S', 0x1A, 1, 1})
	prg := rom[16 : 16+0x4000]
	copy(prg, []byte{0x4C, 0x00, 0xC0}) // JMP $C000
	for _, off := range []int{0x3FFA, 0x3FFC, 0x3FFE} {
		prg[off] = 0x00
		prg[off+1] = 0xC0
	}
	return rom
}

func TestCore_Session(t *testing.T) {
	fe := newFakeFrontend()
	c := NewCore(fe, nil)
	c.Init()
	c.SetEnvironment()
	if !c.LoadGame(GameInfo{Path: "spin.nes", Data: nromImage()}) {
		t.Fatalf("LoadGame failed: %+v", fe.logs)
	}
	for i := 0; i < 3; i++ {
		c.Run()
	}
	if len(fe.video) != 3 || len(fe.audioFrames) != 3 {
		t.Fatalf("video=%d audio=%d, want 3 each", len(fe.video), len(fe.audioFrames))
	}
	// Rendering is off, so every pixel is the backdrop color.
	frame := fe.video[2].frame
	for i, p := range frame {
		if p != frame[0] {
			t.Fatalf("pixel %d = %#08x, want backdrop %#08x", i, p, frame[0])
		}
	}
	if frame[0]&0xFF != 0xFF {
		t.Errorf("backdrop alpha = %#02x, want 0xFF", frame[0]&0xFF)
	}

	c.UnloadGame()
	c.Deinit()
	if c.HasEngine() {
		t.Error("engine survives the session")
	}
}
