// Command libretro builds the NES core as a libretro shared library:
//
//	go build -buildmode=c-shared -o enes_libretro.so ./cmd/libretro
package main

/*
#include <stdlib.h>
#include "libretro.h"
#include "cfuncs.h"
*/
import "C"
import (
	"unsafe"

	"github.com/user-none/enes/libretro"
)

var core = libretro.NewCore(cFrontend{}, nil)

// Strings handed to the frontend in retro_get_system_info must outlive
// the call, so they are allocated once.
var (
	libNameStr  *C.char
	libVerStr   *C.char
	validExtStr *C.char
)

func systemInfoStrings() {
	if libNameStr != nil {
		return
	}
	info := core.SystemInfo()
	libNameStr = C.CString(info.LibraryName)
	libVerStr = C.CString(info.LibraryVersion)
	validExtStr = C.CString(info.ValidExtensions)
}

//export retro_set_environment
func retro_set_environment(cb C.retro_environment_t) {
	C._retro_set_environment(cb)
	core.SetEnvironment()
}

//export retro_set_video_refresh
func retro_set_video_refresh(cb C.retro_video_refresh_t) {
	C._retro_set_video_refresh(cb)
}

//export retro_set_audio_sample
func retro_set_audio_sample(cb C.retro_audio_sample_t) {
	C._retro_set_audio_sample(cb)
}

//export retro_set_audio_sample_batch
func retro_set_audio_sample_batch(cb C.retro_audio_sample_batch_t) {
	C._retro_set_audio_sample_batch(cb)
}

//export retro_set_input_poll
func retro_set_input_poll(cb C.retro_input_poll_t) {
	C._retro_set_input_poll(cb)
}

//export retro_set_input_state
func retro_set_input_state(cb C.retro_input_state_t) {
	C._retro_set_input_state(cb)
}

//export retro_init
func retro_init() {
	systemInfoStrings()
	core.Init()
}

//export retro_deinit
func retro_deinit() {
	core.Deinit()
	freeMemBuffers()
}

//export retro_api_version
func retro_api_version() C.uint {
	return C.uint(core.APIVersion())
}

//export retro_get_system_info
func retro_get_system_info(info *C.struct_retro_system_info) {
	// Some frontends ask before retro_init.
	systemInfoStrings()
	si := core.SystemInfo()
	info.library_name = libNameStr
	info.library_version = libVerStr
	info.valid_extensions = validExtStr
	info.need_fullpath = C.bool(si.NeedFullpath)
	info.block_extract = C.bool(si.BlockExtract)
}

//export retro_get_system_av_info
func retro_get_system_av_info(info *C.struct_retro_system_av_info) {
	av := core.SystemAVInfo()
	info.geometry.base_width = C.uint(av.Geometry.BaseWidth)
	info.geometry.base_height = C.uint(av.Geometry.BaseHeight)
	info.geometry.max_width = C.uint(av.Geometry.MaxWidth)
	info.geometry.max_height = C.uint(av.Geometry.MaxHeight)
	info.geometry.aspect_ratio = C.float(av.Geometry.AspectRatio)
	info.timing.fps = C.double(av.Timing.FPS)
	info.timing.sample_rate = C.double(av.Timing.SampleRate)
}

//export retro_set_controller_port_device
func retro_set_controller_port_device(port C.uint, device C.uint) {
	core.SetControllerPortDevice(uint(port), uint(device))
}

//export retro_reset
func retro_reset() {
	core.Reset()
}

//export retro_run
func retro_run() {
	core.Run()
}

//export retro_serialize_size
func retro_serialize_size() C.size_t {
	return C.size_t(core.SerializeSize())
}

//export retro_serialize
func retro_serialize(data unsafe.Pointer, size C.size_t) C.bool {
	return C.bool(core.Serialize(cBytes(data, size)))
}

//export retro_unserialize
func retro_unserialize(data unsafe.Pointer, size C.size_t) C.bool {
	return C.bool(core.Unserialize(cBytes(data, size)))
}

//export retro_cheat_reset
func retro_cheat_reset() {
	core.CheatReset()
}

//export retro_cheat_set
func retro_cheat_set(index C.uint, enabled C.bool, code *C.char) {
	var s string
	if code != nil {
		s = C.GoString(code)
	}
	core.CheatSet(uint(index), bool(enabled), s)
}

//export retro_load_game
func retro_load_game(game *C.struct_retro_game_info) C.bool {
	if game == nil {
		return C.bool(false)
	}
	return C.bool(core.LoadGame(goGameInfo(game)))
}

//export retro_load_game_special
func retro_load_game_special(gameType C.uint, info *C.struct_retro_game_info, numInfo C.size_t) C.bool {
	var infos []libretro.GameInfo
	if info != nil {
		for _, gi := range unsafe.Slice(info, int(numInfo)) {
			infos = append(infos, goGameInfo(&gi))
		}
	}
	return C.bool(core.LoadGameSpecial(uint(gameType), infos))
}

//export retro_unload_game
func retro_unload_game() {
	core.UnloadGame()
	freeMemBuffers()
}

//export retro_get_region
func retro_get_region() C.uint {
	return C.uint(core.Region())
}

//export retro_get_memory_data
func retro_get_memory_data(id C.uint) unsafe.Pointer {
	return memoryPointer(uint(id))
}

//export retro_get_memory_size
func retro_get_memory_size(id C.uint) C.size_t {
	return C.size_t(core.MemorySize(uint(id)))
}

// goGameInfo copies a retro_game_info into Go memory.
func goGameInfo(game *C.struct_retro_game_info) libretro.GameInfo {
	var gi libretro.GameInfo
	if game.path != nil {
		gi.Path = C.GoString(game.path)
	}
	if game.meta != nil {
		gi.Meta = C.GoString(game.meta)
	}
	if game.data != nil && game.size > 0 {
		gi.Data = C.GoBytes(game.data, C.int(game.size))
	}
	return gi
}

// memoryBuffer is a C copy of a core memory region. The frontend may keep
// the pointer, so it is allocated once per region id and refreshed on
// each request.
type memoryBuffer struct {
	buf  unsafe.Pointer
	size int
}

var memBuffers = map[uint]*memoryBuffer{}

func memoryPointer(id uint) unsafe.Pointer {
	data := core.MemoryData(id)
	if len(data) == 0 {
		return nil
	}
	mb, ok := memBuffers[id]
	if !ok || mb.size != len(data) {
		freeMemBuffer(id)
		mb = &memoryBuffer{buf: C.malloc(C.size_t(len(data))), size: len(data)}
		memBuffers[id] = mb
	}
	copy(unsafe.Slice((*byte)(mb.buf), mb.size), data)
	return mb.buf
}

func freeMemBuffer(id uint) {
	if mb, ok := memBuffers[id]; ok {
		C.free(mb.buf)
		delete(memBuffers, id)
	}
}

func freeMemBuffers() {
	for id := range memBuffers {
		freeMemBuffer(id)
	}
}

func cBytes(data unsafe.Pointer, size C.size_t) []byte {
	if data == nil || size == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(data), int(size))
}

func main() {}
