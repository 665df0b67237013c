package main

import "C"
import (
	"fmt"

	"github.com/TriM-Organization/bedrock-structure-editor/library"
)

var savedLibrary = NewSimpleManager[*library.Library]()

//export NewLibrary
func NewLibrary(path *C.char, backend *C.char, noGrowSync C.int, noSync C.int) C.longlong {
	l, err := library.Open(C.GoString(path), library.Options{
		Backend:    library.Backend(C.GoString(backend)),
		NoGrowSync: asGoBool(noGrowSync),
		NoSync:     asGoBool(noSync),
	})
	if err != nil {
		return -1
	}
	return C.longlong(savedLibrary.AddObject(l))
}

//export CloseLibrary
func CloseLibrary(id C.longlong) *C.char {
	l := savedLibrary.LoadObject(int(id))
	if l == nil {
		return C.CString("CloseLibrary: Library not found")
	}
	savedLibrary.ReleaseObject(int(id))

	if err := (*l).Close(); err != nil {
		return C.CString(fmt.Sprintf("CloseLibrary: %v", err))
	}
	return C.CString("")
}

//export LibraryPut
func LibraryPut(id C.longlong, name *C.char, payload *C.char) *C.char {
	l := savedLibrary.LoadObject(int(id))
	if l == nil {
		return asCbytes(nil)
	}
	entry, err := (*l).Put(C.GoString(name), asGoBytes(payload))
	if err != nil {
		return asCbytes(nil)
	}
	return asCbytes(packEntry(entry))
}

//export LibraryGet
func LibraryGet(id C.longlong, name *C.char) *C.char {
	l := savedLibrary.LoadObject(int(id))
	if l == nil {
		return asCbytes(nil)
	}
	data, err := (*l).Get(C.GoString(name))
	if err != nil {
		return asCbytes(nil)
	}
	return asCbytes(data)
}

//export LibraryHas
func LibraryHas(id C.longlong, name *C.char) C.int {
	l := savedLibrary.LoadObject(int(id))
	if l == nil {
		return -1
	}
	has, err := (*l).Has(C.GoString(name))
	if err != nil {
		return -1
	}
	return asCbool(has)
}

//export LibraryDelete
func LibraryDelete(id C.longlong, name *C.char) *C.char {
	l := savedLibrary.LoadObject(int(id))
	if l == nil {
		return C.CString("LibraryDelete: Library not found")
	}
	return asCerror((*l).Delete(C.GoString(name)))
}

//export LibraryNames
func LibraryNames(id C.longlong) *C.char {
	l := savedLibrary.LoadObject(int(id))
	if l == nil {
		return asCbytes(nil)
	}
	names, err := (*l).Names()
	if err != nil {
		return asCbytes(nil)
	}
	return asCbytes(packStrings(names))
}

//export LibraryCount
func LibraryCount(id C.longlong) C.longlong {
	l := savedLibrary.LoadObject(int(id))
	if l == nil {
		return -1
	}
	count, err := (*l).Count()
	if err != nil {
		return -1
	}
	return C.longlong(count)
}
