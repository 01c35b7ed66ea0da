package handlers

import (
	"encoding/json"
	"log"
	"net/http"
)

func jsonResponse(object interface{}, w http.ResponseWriter) {
	resp, err := json.Marshal(object)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	_, err = w.Write(resp)
	if err != nil {
		log.Println("error writing response:", err)
	}
}
