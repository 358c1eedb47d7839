package session

// guard 单写者标记。拿不到时立即失败，不排队
type guard chan struct{}

func newGuard() guard {
	return make(guard, 1)
}

func (g guard) tryAcquire() bool {
	select {
	case g <- struct{}{}:
		return true
	default:
		return false
	}
}

func (g guard) release() {
	select {
	case <-g:
	default:
	}
}

func (g guard) held() bool {
	return len(g) == 1
}
