package main

/*
#include <stdlib.h>
#include "cfuncs.h"
*/
import "C"
import (
	"unsafe"

	"github.com/user-none/enes/libretro"
)

// cFrontend forwards the core's callbacks to the function pointers the
// frontend registered through the retro_set_* exports.
type cFrontend struct{}

func (cFrontend) SetSupportNoGame(supported bool) bool {
	return bool(C.env_set_support_no_game(C.bool(supported)))
}

func (cFrontend) LogInterface() (libretro.LogFunc, bool) {
	if !C.env_get_log_interface() {
		return nil, false
	}
	return logToFrontend, true
}

func logToFrontend(level libretro.LogLevel, msg string) {
	cs := C.CString(msg)
	defer C.free(unsafe.Pointer(cs))
	C.call_log_cb(C.int(level), cs)
}

func (cFrontend) SetPixelFormat(format libretro.PixelFormat) bool {
	return bool(C.env_set_pixel_format(C.int(format)))
}

func (cFrontend) VariablesUpdated() bool {
	return bool(C.env_get_variable_update())
}

func (cFrontend) VideoRefresh(frame []uint32, width, height, pitch int) {
	if len(frame) == 0 {
		return
	}
	C.call_video_cb(unsafe.Pointer(&frame[0]), C.uint(width), C.uint(height), C.size_t(pitch))
}

func (cFrontend) AudioSampleBatch(samples []int16, frames int) int {
	var data *C.int16_t
	if len(samples) > 0 {
		data = (*C.int16_t)(unsafe.Pointer(&samples[0]))
	}
	return int(C.call_audio_batch_cb(data, C.size_t(frames)))
}

func (cFrontend) InputPoll() {
	C.call_input_poll_cb()
}

func (cFrontend) InputState(port, device, index, id uint) int16 {
	return int16(C.call_input_state_cb(C.uint(port), C.uint(device), C.uint(index), C.uint(id)))
}
