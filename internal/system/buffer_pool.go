package system

import (
	"image"
	"sync"
	"sync/atomic"
)

// ImagePool хранит отдельный sync.Pool для каждого размера кадра.
// Кадры из пула не очищаются: вызывающий перерисовывает их целиком.
type ImagePool struct {
	pools  sync.Map // image.Rectangle -> *sync.Pool
	allocs atomic.Int64
}

var globalPool = &ImagePool{}

// GetImage берёт кадр нужного размера из общего пула.
func GetImage(rect image.Rectangle) *image.RGBA {
	return globalPool.Get(rect)
}

// PutImage возвращает кадр в общий пул.
func PutImage(img *image.RGBA) {
	globalPool.Put(img)
}

// PoolAllocs is how many frames the shared pool had to allocate.
func PoolAllocs() int64 {
	return globalPool.allocs.Load()
}

func (p *ImagePool) poolFor(rect image.Rectangle) *sync.Pool {
	if v, ok := p.pools.Load(rect); ok {
		return v.(*sync.Pool)
	}
	v, _ := p.pools.LoadOrStore(rect, &sync.Pool{
		New: func() any {
			p.allocs.Add(1)
			return image.NewRGBA(rect)
		},
	})
	return v.(*sync.Pool)
}

func (p *ImagePool) Get(rect image.Rectangle) *image.RGBA {
	return p.poolFor(rect).Get().(*image.RGBA)
}

// Put drops frames of a size nobody asked for.
func (p *ImagePool) Put(img *image.RGBA) {
	if img == nil {
		return
	}
	if v, ok := p.pools.Load(img.Rect); ok {
		v.(*sync.Pool).Put(img)
	}
}
