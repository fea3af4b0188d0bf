// Package platform brackets the program with the OS component object
// subsystem. On systems without COM it does nothing.
package platform

import (
	"errors"
	"fmt"
	"log"

	"github.com/go-ole/go-ole"
)

// S_FALSE, COM was already initialized on this thread
const sFalse = 0x00000001

type COM struct {
	active bool
}

// InitCOM initializes COM for the calling thread in the multithreaded
// apartment. Each successful call must be balanced by Release.
func InitCOM() (*COM, error) {
	err := ole.CoInitializeEx(0, ole.COINIT_MULTITHREADED)
	if err == nil {
		log.Println("Successfully initialized COM")
		return &COM{active: true}, nil
	}
	var oleErr *ole.OleError
	if !errors.As(err, &oleErr) {
		return nil, fmt.Errorf("CoInitializeEx: %w", err)
	}
	switch oleErr.Code() {
	case sFalse:
		return &COM{active: true}, nil
	case ole.E_NOTIMPL:
		log.Println("COM not available on this platform, skipping")
		return &COM{}, nil
	}
	return nil, fmt.Errorf("CoInitializeEx: %w", err)
}

// Active reports whether Release has to uninitialize COM.
func (c *COM) Active() bool {
	return c != nil && c.active
}

func (c *COM) Release() {
	if !c.Active() {
		return
	}
	ole.CoUninitialize()
	c.active = false
}
