package mode

import "github.com/pym-editor/pym/internal/buffer"

// motionForKey maps a motion-group key symbol to the buffer motion it
// triggers, count columns/lines at a time. ' ' and "backspace" are the
// cross-line character motions (forward/backward), distinct from the
// within-line "l"/"h"; "enter" aliases "j".
func motionForKey(buf *buffer.Buffer, key string, count int) buffer.MotionLike {
	switch key {
	case "h":
		return buf.LeftMotion(count)
	case KeyBackspace:
		return buf.BackwardMotion(count)
	case "l":
		return buf.RightMotion(count)
	case " ":
		return buf.ForwardMotion(count)
	case "k":
		return buf.UpMotion(count)
	case "j", KeyEnter:
		return buf.DownMotion(count)
	default:
		panic("mode: unreachable motion key " + key)
	}
}
