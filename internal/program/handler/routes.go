package handler

import (
	"github.com/gorilla/mux"
)

func (h *Handler) SetupRoutes(mainRouter *mux.Router) {
	mainRouter.HandleFunc("/programs", h.HandleCreate).Methods("POST", "OPTIONS").Name("new-program")
	mainRouter.HandleFunc("/programs", h.HandleList).Methods("GET", "OPTIONS").Name("list-programs")
	mainRouter.HandleFunc("/programs/{id:[0-9]+}", h.HandleGet).Methods("GET", "OPTIONS").Name("get-program")
	mainRouter.HandleFunc("/programs/{id:[0-9]+}", h.HandleDelete).Methods("DELETE", "OPTIONS").Name("remove-program")
	mainRouter.HandleFunc("/programs/{id:[0-9]+}/template", h.HandleGetTemplate).Methods("GET", "OPTIONS").Name("program-template")
	mainRouter.HandleFunc("/programs/{id:[0-9]+}/export", h.HandleExport).Methods("GET", "OPTIONS").Name("export-program")
	mainRouter.HandleFunc("/programs/{id:[0-9]+}/stats", h.HandleStats).Methods("GET", "OPTIONS").Name("program-stats")
	mainRouter.HandleFunc("/programs/{id:[0-9]+}/history", h.HandleHistory).Methods("GET", "OPTIONS").Name("program-history")

	mainRouter.HandleFunc("/programs/{id:[0-9]+}/start", h.HandleStart).Methods("POST", "OPTIONS").Name("start-program")
	mainRouter.HandleFunc("/programs/{id:[0-9]+}/pause", h.HandlePause).Methods("POST", "OPTIONS").Name("pause-program")
	mainRouter.HandleFunc("/programs/{id:[0-9]+}/resume", h.HandleResume).Methods("POST", "OPTIONS").Name("resume-program")
	mainRouter.HandleFunc("/programs/{id:[0-9]+}/complete", h.HandleComplete).Methods("POST", "OPTIONS").Name("complete-program")
	mainRouter.HandleFunc("/programs/{id:[0-9]+}/advance", h.HandleAdvance).Methods("POST", "OPTIONS").Name("advance-program")
	mainRouter.HandleFunc("/programs/{id:[0-9]+}/rename", h.HandleRename).Methods("POST", "OPTIONS").Name("rename-program")

	mainRouter.HandleFunc("/programs/{id:[0-9]+}/days/{week}/{day}", h.HandleCompleteDay).Methods("POST", "OPTIONS").Name("complete-day")
	mainRouter.HandleFunc("/programs/{id:[0-9]+}/days/{week}/{day}", h.HandleUndoDay).Methods("DELETE", "OPTIONS").Name("undo-day")
	mainRouter.HandleFunc("/programs/{id:[0-9]+}/rest/{week}/{day}", h.HandleLogRestDay).Methods("PUT", "OPTIONS").Name("log-rest-day")
	mainRouter.HandleFunc("/programs/{id:[0-9]+}/rest/{week}/{day}", h.HandleGetRestDay).Methods("GET", "OPTIONS").Name("get-rest-day")

	mainRouter.HandleFunc("/users/{user}/today", h.HandleToday).Methods("GET", "OPTIONS").Name("todays-workout")
	mainRouter.HandleFunc("/users/{user}/calendar", h.HandleCalendar).Methods("GET", "OPTIONS").Name("calendar")
}
