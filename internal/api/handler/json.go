package handler

import (
	jsoniter "github.com/json-iterator/go"
)

// json é o codec usado em todas as respostas dos handlers
var json = jsoniter.ConfigCompatibleWithStandardLibrary
